// Package config loads viewer settings from YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPath names the environment variable holding the config file path.
	EnvPath = "ANTS_INSIGHT_CONFIG"
	// DefaultPath is read from the working directory when EnvPath is unset.
	DefaultPath = "ants-insight.yaml"
)

// Config holds every viewer setting. Zero values are not meaningful; start
// from Default.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Playback PlaybackConfig `yaml:"playback"`
	Render   RenderConfig   `yaml:"render"`
	Log      LogConfig      `yaml:"log"`
}

// WindowConfig describes the viewer window.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// PlaybackConfig sets the initial playback state and the tick rate.
type PlaybackConfig struct {
	Autoplay bool    `yaml:"autoplay"`
	Speed    float64 `yaml:"speed"`
	TPS      int     `yaml:"tps"`
}

// RenderConfig controls the HUD, line width and debug overlay.
type RenderConfig struct {
	HUD       bool    `yaml:"hud"`
	HUDColor  Color   `yaml:"hud_color"`
	HUDSize   float64 `yaml:"hud_size"`
	LineWidth float32 `yaml:"line_width"`
	Overlay   bool    `yaml:"overlay"`
}

// LogConfig is handed to logger.Init.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Ants Insight",
			Width:  1280,
			Height: 720,
		},
		Playback: PlaybackConfig{
			Autoplay: true,
			Speed:    1.0,
			TPS:      60,
		},
		Render: RenderConfig{
			HUD:      true,
			HUDColor: Color{colornames.White},
			HUDSize:  16,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path on top of the defaults, so a file only needs the keys it
// changes.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads the file named by EnvPath, or DefaultPath when it exists, or
// falls back to Default. The returned path is empty when no file was read.
func Resolve() (Config, string, error) {
	if path, ok := os.LookupEnv(EnvPath); ok && path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		cfg, err := Load(DefaultPath)
		return cfg, DefaultPath, err
	} else if !errors.Is(err, os.ErrNotExist) {
		return Default(), "", fmt.Errorf("config: stat %s: %w", DefaultPath, err)
	}
	return Default(), "", nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Playback.Speed <= 0 {
		errs = append(errs, fmt.Errorf("playback speed must be positive, got %v", c.Playback.Speed))
	}
	if c.Playback.TPS <= 0 {
		errs = append(errs, fmt.Errorf("playback tps must be positive, got %d", c.Playback.TPS))
	}
	if c.Render.LineWidth < 0 {
		errs = append(errs, fmt.Errorf("render line_width must not be negative, got %v", c.Render.LineWidth))
	}
	if c.Render.HUDSize <= 0 {
		errs = append(errs, fmt.Errorf("render hud_size must be positive, got %v", c.Render.HUDSize))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Color is a YAML color given either as an SVG color name like "gold" or as
// "#rrggbb" / "#rrggbbaa".
type Color struct {
	color.Color
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	if c.Color == nil {
		return "", nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

// ParseColor accepts an SVG color name or a hex color.
func ParseColor(s string) (color.Color, error) {
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return named, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 0xff
	for i := 0; i < len(hex)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return nil, fmt.Errorf("invalid color format: %s", s)
		}
		rgba[i] = v
	}
	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}
