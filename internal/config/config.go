// Config loads bmpview settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"

	"github.com/anas-shakeel/go-bmpdecode/bmp"
)

// DefaultPath is read when no -config flag is given.
const DefaultPath = "bmpview.yml"

type Config struct {
	LogLevel    string   `mapstructure:"log_level"`    // debug, info, warn, error
	Lenient     bool     `mapstructure:"lenient"`      // Decode with DecodePartial
	Format      string   `mapstructure:"format"`       // Output of info: text or yaml
	Width       int      `mapstructure:"width"`        // Fit view output to this many columns (0 = as is)
	Filters     []string `mapstructure:"filters"`      // Applied in order: grayscale, luma, invert, red, green, blue
	Brightness  float32  `mapstructure:"brightness"`   // Percent, -100 to 100
	Contrast    float32  `mapstructure:"contrast"`     // Percent, -100 to 100
	MaxPixels   int      `mapstructure:"max_pixels"`   // Largest width*height decoded
	MaxRLEOps   int      `mapstructure:"max_rle_ops"`  // Run-length ceiling (0 = automatic)
	TableSizing string   `mapstructure:"table_sizing"` // declared or space
	QueryLimit  int      `mapstructure:"query_limit"`  // Matches printed by query (0 = all)
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		LogLevel:    "info",
		Format:      "text",
		MaxPixels:   bmp.DefaultMaxPixels,
		TableSizing: "declared",
	}
}

// Load reads path and merges it onto Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.WithField("path", path).Debug("config file not found, using defaults")
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read configuration file '%s': %w", path, err)
	}

	if err := Merge(&cfg, data); err != nil {
		return cfg, fmt.Errorf("failed to parse configuration file '%s': %w", path, err)
	}
	log.WithField("path", path).Debug("loaded configuration")
	return cfg, nil
}

// Merge decodes YAML data onto cfg. Scalars are converted where sensible
// ("3" for an int, "grayscale,invert" for a list) and unknown keys fail.
func Merge(cfg *Config, data []byte) error {
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks enumerated and ranged fields.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("format: must be text or yaml, got %q", c.Format)
	}
	if _, err := c.sizing(); err != nil {
		return err
	}
	if c.Brightness < -100 || c.Brightness > 100 {
		return fmt.Errorf("brightness: %v out of range [-100, 100]", c.Brightness)
	}
	if c.Contrast < -100 || c.Contrast > 100 {
		return fmt.Errorf("contrast: %v out of range [-100, 100]", c.Contrast)
	}
	if c.Width < 0 || c.MaxPixels < 0 || c.MaxRLEOps < 0 || c.QueryLimit < 0 {
		return errors.New("width, max_pixels, max_rle_ops and query_limit must not be negative")
	}
	return nil
}

func (c *Config) sizing() (bmp.TableSizing, error) {
	switch c.TableSizing {
	case "", "declared":
		return bmp.TableSizeDeclared, nil
	case "space":
		return bmp.TableSizeFromSpace, nil
	}
	return 0, fmt.Errorf("table_sizing: must be declared or space, got %q", c.TableSizing)
}

// Level returns the configured log level.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Options returns the decoding options described by c.
func (c *Config) Options(logger log.Interface) *bmp.Options {
	sizing, _ := c.sizing()
	return &bmp.Options{
		Logger:      logger,
		MaxPixels:   c.MaxPixels,
		MaxRLEOps:   c.MaxRLEOps,
		TableSizing: sizing,
	}
}
