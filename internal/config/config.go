package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/philipparndt/gobend/internal/bend"
	"github.com/philipparndt/gobend/internal/scene"
	"github.com/philipparndt/gobend/internal/sequence"
	"github.com/philipparndt/gobend/internal/view"
)

// DefaultPath is the configuration file looked up when none is given
const DefaultPath = "gobend.toml"

// Config holds every tunable of the application
type Config struct {
	Scene    SceneConfig    `toml:"scene"`
	View     ViewConfig     `toml:"view"`
	Sequence SequenceConfig `toml:"sequence"`
	Data     DataConfig     `toml:"data"`
	Log      LogConfig      `toml:"log"`
}

// SceneConfig controls ingestion, normalization and hit testing
type SceneConfig struct {
	BendColor         int     `toml:"bend_color"`
	Margin            float64 `toml:"margin"`
	VerticalReference string  `toml:"vertical_reference"`
	Axis              string  `toml:"axis"`
	Tolerance         float64 `toml:"tolerance"`
}

// ViewConfig controls pan, zoom and click detection
type ViewConfig struct {
	ClickThreshold float64 `toml:"click_threshold"`
	ZoomStep       float64 `toml:"zoom_step"`
	MinScale       float64 `toml:"min_scale"`
	MaxScale       float64 `toml:"max_scale"`
}

// SequenceConfig controls new table rows
type SequenceConfig struct {
	DefaultAngle   string  `toml:"default_angle"`
	ManualPosition float64 `toml:"manual_position"`
}

// DataConfig points at the training data and die configuration
type DataConfig struct {
	TrainingFile  string `toml:"training_file"`
	DieConfigFile string `toml:"die_config_file"`
	Neighbours    int    `toml:"neighbours"`
}

// LogConfig selects the log level and output format (text or json)
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			BendColor:         scene.DefaultBendColor,
			Margin:            scene.DefaultMargin,
			VerticalReference: string(scene.ReferenceBottom),
			Axis:              string(scene.AxisX),
			Tolerance:         scene.DefaultTolerance,
		},
		View: ViewConfig{
			ClickThreshold: view.DefaultClickThreshold,
			ZoomStep:       view.DefaultZoomStep,
			MinScale:       view.DefaultMinScale,
			MaxScale:       view.DefaultMaxScale,
		},
		Sequence: SequenceConfig{
			DefaultAngle:   sequence.DefaultAngle,
			ManualPosition: sequence.DefaultManualPosition,
		},
		Data: DataConfig{
			TrainingFile:  "data.json",
			DieConfigFile: "config/matrix_config.json",
			Neighbours:    bend.DefaultNeighbours,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the TOML file at path over the defaults and then applies
// GOBEND_* environment overrides. A missing file is not an error when path
// is empty or the default one.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != "" && path != DefaultPath
	if path == "" {
		path = DefaultPath
	}

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Scene.BendColor = getEnvAsInt("GOBEND_BEND_COLOR", c.Scene.BendColor)
	c.Scene.Margin = getEnvAsFloat("GOBEND_MARGIN", c.Scene.Margin)
	c.Scene.VerticalReference = getEnv("GOBEND_VERTICAL_REFERENCE", c.Scene.VerticalReference)
	c.Scene.Axis = getEnv("GOBEND_AXIS", c.Scene.Axis)
	c.Scene.Tolerance = getEnvAsFloat("GOBEND_TOLERANCE", c.Scene.Tolerance)
	c.View.ZoomStep = getEnvAsFloat("GOBEND_ZOOM_STEP", c.View.ZoomStep)
	c.Data.TrainingFile = getEnv("GOBEND_DATA_FILE", c.Data.TrainingFile)
	c.Data.DieConfigFile = getEnv("GOBEND_DIE_CONFIG", c.Data.DieConfigFile)
	c.Log.Level = getEnv("GOBEND_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("GOBEND_LOG_FORMAT", c.Log.Format)
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	if _, err := scene.ParseVerticalReference(c.Scene.VerticalReference); err != nil {
		return fmt.Errorf("scene.vertical_reference: %w", err)
	}
	if _, err := scene.ParseAxis(c.Scene.Axis); err != nil {
		return fmt.Errorf("scene.axis: %w", err)
	}
	if c.Scene.Tolerance <= 0 {
		return fmt.Errorf("scene.tolerance must be positive, got %v", c.Scene.Tolerance)
	}
	if c.Scene.Margin < 0 {
		return fmt.Errorf("scene.margin must not be negative, got %v", c.Scene.Margin)
	}
	if c.View.ZoomStep <= 1 {
		return fmt.Errorf("view.zoom_step must be greater than 1, got %v", c.View.ZoomStep)
	}
	if c.View.MinScale <= 0 || c.View.MaxScale < c.View.MinScale {
		return fmt.Errorf("view scale range [%v, %v] is invalid", c.View.MinScale, c.View.MaxScale)
	}
	if c.View.ClickThreshold <= 0 {
		return fmt.Errorf("view.click_threshold must be positive, got %v", c.View.ClickThreshold)
	}
	if _, err := sequence.ParseDecimal(c.Sequence.DefaultAngle); err != nil {
		return fmt.Errorf("sequence.default_angle: %w", err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// VerticalReference returns the parsed normalization reference
func (c *Config) VerticalReference() scene.VerticalReference {
	ref, _ := scene.ParseVerticalReference(c.Scene.VerticalReference)
	return ref
}

// Axis returns the parsed measurement axis
func (c *Config) Axis() scene.Axis {
	axis, _ := scene.ParseAxis(c.Scene.Axis)
	return axis
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := sequence.ParseDecimal(value); err == nil {
			return f
		}
	}
	return defaultVal
}
