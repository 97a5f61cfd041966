// Package config holds the window and context settings shared by the
// chapter programs.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// EnvVar names the environment variable holding an optional TOML file path.
const EnvVar = "GLCHAPTERS_CONFIG"

type Config struct {
	Title       string     `toml:"title"`
	Width       int        `toml:"width"`
	Height      int        `toml:"height"`
	LogLevel    string     `toml:"log_level"`
	ErrorDialog bool       `toml:"error_dialog"`
	ClearColor  [4]float32 `toml:"clear_color"`
	GL          GL         `toml:"gl"`
}

// GL selects the requested context version. The context is always
// core-profile and forward-compatible.
type GL struct {
	Major int  `toml:"major"`
	Minor int  `toml:"minor"`
	Debug bool `toml:"debug"`
}

func Default(title string) Config {
	return Config{
		Title:    title,
		Width:    800,
		Height:   600,
		LogLevel: "info",
		GL: GL{
			Major: 4,
			Minor: 0,
		},
	}
}

// Decode overlays the TOML document in r onto cfg. Keys missing from the
// document keep their current value; unknown keys are an error.
func Decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown config keys:\n%s", strict.String())
		}
		return fmt.Errorf("toml decode failed: %w", err)
	}
	return nil
}

// Load overlays the TOML file at path onto cfg.
func Load(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := Decode(f, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// FromEnv returns the defaults for title, overlaid with the file named by
// EnvVar if it is set, and validated.
func FromEnv(title string) (Config, error) {
	cfg := Default(title)
	if path := os.Getenv(EnvVar); path != "" {
		if err := Load(path, &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.GL.Major < 3 || (c.GL.Major == 3 && c.GL.Minor < 2) {
		errs = append(errs, fmt.Errorf("GL %d.%d has no core profile, need 3.2 or later", c.GL.Major, c.GL.Minor))
	}
	if c.GL.Minor < 0 {
		errs = append(errs, fmt.Errorf("GL minor version %d is negative", c.GL.Minor))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

func (c Config) ClearColour() mgl32.Vec4 {
	return mgl32.Vec4(c.ClearColor)
}
