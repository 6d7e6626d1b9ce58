// Package config loads the host configuration used by the piet command and
// by hosts that prefer a file over building piet.Parameters by hand.
//
// A configuration file is YAML (.yaml, .yml) or TOML (.toml):
//
//	debug:
//	  behavior: verbose
//	display:
//	  widthPx: 1080
//	  density: 2.75
//	  orientation: portrait
//	pools:
//	  maxKeys: 64
//	log:
//	  level: debug
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/piet/pkg/debug"
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/logging"
	"github.com/go-drift/piet/pkg/metrics"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/piet"
)

// Format is the encoding of a configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Defaults applied to unset fields.
const (
	DefaultWidthPx  = 400
	DefaultDensity  = 1
	DefaultLogLevel = "info"
)

// HostConfig is the file representation of a host setup.
type HostConfig struct {
	Debug   DebugConfig   `yaml:"debug" toml:"debug"`
	Display DisplayConfig `yaml:"display" toml:"display"`
	Assets  AssetsConfig  `yaml:"assets" toml:"assets"`
	Pools   PoolConfig    `yaml:"pools" toml:"pools"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

// DebugConfig selects how recorded problems are surfaced.
type DebugConfig struct {
	Behavior string `yaml:"behavior" toml:"behavior" validate:"debug_behavior"`
}

// DisplayConfig describes the frame environment.
type DisplayConfig struct {
	WidthPx     int     `yaml:"widthPx" toml:"widthPx" validate:"gte=0"`
	Density     float32 `yaml:"density" toml:"density" validate:"gte=0,lte=10"`
	Orientation string  `yaml:"orientation" toml:"orientation" validate:"omitempty,oneof=portrait landscape"`
}

// AssetsConfig configures the host asset provider.
type AssetsConfig struct {
	DarkTheme      bool     `yaml:"darkTheme" toml:"darkTheme"`
	RtL            bool     `yaml:"rtl" toml:"rtl"`
	CornerRadiusDp int      `yaml:"cornerRadiusDp" toml:"cornerRadiusDp" validate:"gte=0"`
	Typefaces      []string `yaml:"typefaces" toml:"typefaces" validate:"dive,required"`
}

// PoolConfig bounds the recycler pools. Zero uses the engine defaults.
type PoolConfig struct {
	MaxKeys   int `yaml:"maxKeys" toml:"maxKeys" validate:"gte=0"`
	MaxPerKey int `yaml:"maxPerKey" toml:"maxPerKey" validate:"gte=0"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level         string `yaml:"level" toml:"level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	HumanReadable bool   `yaml:"humanReadable" toml:"humanReadable"`
}

// Default returns a configuration with every default applied.
func Default() *HostConfig {
	cfg := &HostConfig{}
	cfg.applyDefaults()
	return cfg
}

// FormatFor picks the format from the file extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported config extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
}

// Load reads, decodes, defaults and validates the file at path.
func Load(path string) (*HostConfig, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional loads path when it is non-empty and returns the defaults
// otherwise.
func LoadOptional(path string) (*HostConfig, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes data in the given format. Unknown keys are rejected.
func Parse(data []byte, format Format) (*HostConfig, error) {
	var cfg HostConfig
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	cfg.applyDefaults()
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *HostConfig) applyDefaults() {
	if c.Display.WidthPx == 0 {
		c.Display.WidthPx = DefaultWidthPx
	}
	if c.Display.Density == 0 {
		c.Display.Density = DefaultDensity
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = DefaultLogLevel
	}
	c.Debug.Behavior = strings.ToLower(strings.TrimSpace(c.Debug.Behavior))
	c.Display.Orientation = strings.ToLower(strings.TrimSpace(c.Display.Orientation))
}

// Behavior returns the configured debug behavior.
func (c *HostConfig) Behavior() debug.Behavior {
	b, _ := debug.ParseBehavior(c.Debug.Behavior)
	return b
}

// Orientation returns the configured orientation.
func (c *HostConfig) Orientation() model.Orientation {
	switch c.Display.Orientation {
	case "portrait":
		return model.OrientationPortrait
	case "landscape":
		return model.OrientationLandscape
	}
	return model.OrientationUnspecified
}

// LoggingOptions returns the options for logging.New.
func (c *HostConfig) LoggingOptions(w io.Writer) logging.Options {
	return logging.Options{Level: c.Log.Level, HumanReadable: c.Log.HumanReadable, Writer: w}
}

// Parameters converts the configuration into manager parameters. Host
// providers and the view registry are left for the caller.
func (c *HostConfig) Parameters(log *logging.Logger, rec *metrics.Recorder) piet.Parameters {
	return piet.Parameters{
		DebugBehavior: c.Behavior(),
		Density:       c.Display.Density,
		Orientation:   c.Orientation(),
		Logger:        log,
		Metrics:       rec,
		MaxPoolKeys:   c.Pools.MaxKeys,
		MaxPoolPerKey: c.Pools.MaxPerKey,
		ErrorHandler: &pieterrors.LogHandler{
			Logger:  log.Zerolog(),
			Verbose: c.Log.Level == "debug" || c.Log.Level == "trace",
		},
	}
}
