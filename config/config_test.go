package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, 400, cfg.Canvas.Width)
	assert.Equal(t, 400, cfg.Canvas.Height)
	assert.Equal(t, 800*time.Millisecond, cfg.Debounce.Stroke)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce.Upload)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "digitrec.yaml")
	data := "api_url: http://model:9000\ncanvas:\n  width: 280\n  height: 280\n  line_width: 14\ndebounce:\n  stroke: 1s\n"
	require.NoError(t, os.WriteFile(fn, []byte(data), 0600))

	cfg, err := Load(fn)
	require.NoError(t, err)
	assert.Equal(t, "http://model:9000", cfg.APIURL)
	assert.Equal(t, 280, cfg.Canvas.Width)
	assert.Equal(t, 14.0, cfg.Canvas.LineWidth)
	assert.Equal(t, time.Second, cfg.Debounce.Stroke)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce.Upload)

	t.Setenv(EnvAPIURL, "https://digits.example.com")
	cfg, err = Load(fn)
	require.NoError(t, err)
	assert.Equal(t, "https://digits.example.com", cfg.APIURL)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("apiurl: x\n"), 0600))

	_, err := Load(fn)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.APIURL = "localhost"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Canvas.Width = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Debounce.Stroke = -time.Second
	assert.Error(t, cfg.Validate())
}
