package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("Chapter 3")
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Chapter 3", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, GL{Major: 4, Minor: 0}, cfg.GL)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 0}, cfg.ClearColour())

	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
}

func TestDecodeOverlays(t *testing.T) {
	cfg := Default("Chapter 2")
	err := Decode(strings.NewReader(`
width = 1024
log_level = "debug"
clear_color = [0.0, 0.0, 0.25, 1.0]

[gl]
minor = 1
debug = true
`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, "Chapter 2", cfg.Title)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, GL{Major: 4, Minor: 1, Debug: true}, cfg.GL)
	assert.Equal(t, mgl32.Vec4{0, 0, 0.25, 1}, cfg.ClearColour())

	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default("Chapter 2")
	err := Decode(strings.NewReader("fullscreen = true\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fullscreen")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "must be positive"},
		{"negative height", func(c *Config) { c.Height = -1 }, "must be positive"},
		{"legacy GL", func(c *Config) { c.GL = GL{Major: 3, Minor: 1} }, "no core profile"},
		{"GL 2", func(c *Config) { c.GL = GL{Major: 2, Minor: 1} }, "no core profile"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("x")
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := Default("x")
	cfg.GL = GL{Major: 3, Minor: 2}
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glchapters.toml")
	require.NoError(t, os.WriteFile(path, []byte("title = \"Overridden\"\nheight = 720\n"), 0o644))
	t.Setenv(EnvVar, path)

	cfg, err := FromEnv("Chapter 3")
	require.NoError(t, err)
	assert.Equal(t, "Overridden", cfg.Title)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 800, cfg.Width)
}

func TestFromEnvUnset(t *testing.T) {
	t.Setenv(EnvVar, "")

	cfg, err := FromEnv("Chapter 2")
	require.NoError(t, err)
	assert.Equal(t, Default("Chapter 2"), cfg)
}

func TestFromEnvMissingFile(t *testing.T) {
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "missing.toml"))

	_, err := FromEnv("Chapter 2")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
