package drawing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a serialization format for drawings
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension
func FormatFromPath(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported file type: %s (expected .json, .yaml or .yml)", filepath.Ext(filename))
	}
}

// Parse reads a drawing file. The format is detected from the extension.
func Parse(filename string) (*Drawing, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	d, err := Decode(file, format)
	if err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return d, nil
}

// Decode reads a drawing in the given format
func Decode(reader io.Reader, format Format) (*Drawing, error) {
	d := NewDrawing("")

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(reader).Decode(d); err != nil {
			return nil, fmt.Errorf("failed to decode JSON drawing: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(reader).Decode(d); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode YAML drawing: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown drawing format %q", format)
	}

	for i := range d.Records {
		d.Records[i].Kind = Kind(strings.ToUpper(strings.TrimSpace(string(d.Records[i].Kind))))
	}
	return d, nil
}

// Encode writes a drawing in the given format
func Encode(writer io.Writer, d *Drawing, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode JSON drawing: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(writer)
		defer enc.Close()
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode YAML drawing: %w", err)
		}
	default:
		return fmt.Errorf("unknown drawing format %q", format)
	}
	return nil
}
