package bend

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
)

// Sample is one measured bend from the training data
type Sample struct {
	Thickness   float64 `json:"Grubosc"`
	Width       float64 `json:"V"`
	Angle       float64 `json:"Kat"`
	BDMild      float64 `json:"BD_CZ"`
	BDStainless float64 `json:"BD_N"`
}

// BD returns the measured deduction for the given material
func (s Sample) BD(material Material) float64 {
	if material == MaterialStainless {
		return s.BDStainless
	}
	return s.BDMild
}

// ErrEmptyDataset is returned when a dataset has no usable samples
var ErrEmptyDataset = errors.New("dataset contains no samples")

// Dataset is the set of measured bends used for prediction and for the
// thickness/width choices
type Dataset struct {
	Samples []Sample
}

// LoadDataset reads a JSON array of samples. Rows with non-finite values are
// dropped.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read training data: %w", err)
	}

	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("failed to parse training data %s: %w", path, err)
	}
	return NewDataset(samples)
}

// NewDataset builds a dataset from samples, dropping rows with non-finite values
func NewDataset(samples []Sample) (*Dataset, error) {
	kept := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if finite(s.Thickness, s.Width, s.Angle, s.BDMild, s.BDStainless) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyDataset
	}
	return &Dataset{Samples: kept}, nil
}

// Add appends a measured bend. Samples with non-finite values are rejected.
func (d *Dataset) Add(sample Sample) error {
	if !finite(sample.Thickness, sample.Width, sample.Angle, sample.BDMild, sample.BDStainless) {
		return fmt.Errorf("sample %+v: %w", sample, ErrOutOfDomain)
	}
	if sample.Thickness <= 0 || sample.Width <= 0 {
		return fmt.Errorf("thickness and width must be positive: %w", ErrOutOfDomain)
	}
	d.Samples = append(d.Samples, sample)
	return nil
}

// Save writes the dataset as an indented JSON array
func (d *Dataset) Save(path string) error {
	data, err := json.MarshalIndent(d.Samples, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode training data: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write training data: %w", err)
	}
	return nil
}

// Thicknesses returns the distinct thicknesses in ascending order
func (d *Dataset) Thicknesses() []float64 {
	return distinct(d.Samples, func(s Sample) (float64, bool) { return s.Thickness, true })
}

// Widths returns the distinct die widths in ascending order
func (d *Dataset) Widths() []float64 {
	return distinct(d.Samples, func(s Sample) (float64, bool) { return s.Width, true })
}

// WidthsFor returns the distinct die widths measured for a thickness
func (d *Dataset) WidthsFor(thickness float64) []float64 {
	return distinct(d.Samples, func(s Sample) (float64, bool) { return s.Width, s.Thickness == thickness })
}

func distinct(samples []Sample, pick func(Sample) (float64, bool)) []float64 {
	seen := make(map[float64]bool)
	values := make([]float64, 0)
	for _, s := range samples {
		v, ok := pick(s)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Float64s(values)
	return values
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
