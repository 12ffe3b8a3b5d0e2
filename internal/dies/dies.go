package dies

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Config maps a sheet thickness to the die-opening widths allowed for it
type Config struct {
	widths map[float64][]float64
}

// NewConfig creates an empty configuration
func NewConfig() *Config {
	return &Config{widths: make(map[float64][]float64)}
}

// Load reads a JSON object keyed by thickness ("1.5": [8, 12]). A missing
// file yields an empty configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("die configuration not found, allowing all widths", "path", path)
		return NewConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read die configuration: %w", err)
	}

	raw := make(map[string][]float64)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse die configuration %s: %w", path, err)
	}

	cfg := NewConfig()
	for key, widths := range raw {
		thickness, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid thickness key %q in %s: %w", key, path, err)
		}
		cfg.Set(thickness, widths)
	}
	return cfg, nil
}

// Save writes the configuration as JSON, creating the directory if needed
func (c *Config) Save(path string) error {
	raw := make(map[string][]float64, len(c.widths))
	for thickness, widths := range c.widths {
		raw[strconv.FormatFloat(thickness, 'f', -1, 64)] = widths
	}

	data, err := json.MarshalIndent(raw, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode die configuration: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write die configuration: %w", err)
	}
	return nil
}

// Set replaces the allowed widths for a thickness
func (c *Config) Set(thickness float64, widths []float64) {
	sorted := append([]float64(nil), widths...)
	sort.Float64s(sorted)
	c.widths[thickness] = sorted
}

// Configured returns the widths stored for a thickness and whether an entry exists
func (c *Config) Configured(thickness float64) ([]float64, bool) {
	widths, ok := c.widths[thickness]
	return widths, ok
}

// AllowedWidths filters the available widths down to those configured for
// the thickness. Without an entry for the thickness every width is allowed.
func (c *Config) AllowedWidths(thickness float64, available []float64) []float64 {
	configured, ok := c.widths[thickness]
	if !ok {
		return append([]float64(nil), available...)
	}

	allowed := make(map[float64]bool, len(configured))
	for _, w := range configured {
		allowed[w] = true
	}
	result := make([]float64, 0, len(available))
	for _, w := range available {
		if allowed[w] {
			result = append(result, w)
		}
	}
	return result
}
