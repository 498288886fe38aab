package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	EnvAPIURL  = "DIGITREC_API_URL"
	EnvLogMode = "DIGITREC_LOG_MODE"
	EnvConfig  = "DIGITREC_CONFIG"

	DefaultAPIURL = "http://localhost:5000"
)

type Config struct {
	APIURL   string         `yaml:"api_url"`
	LogMode  string         `yaml:"log_mode"`
	Timeout  time.Duration  `yaml:"timeout"`
	Canvas   CanvasConfig   `yaml:"canvas"`
	Debounce DebounceConfig `yaml:"debounce"`
}

type CanvasConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	LineWidth float64 `yaml:"line_width"`
}

// DebounceConfig holds the two auto-predict delays: the trailing stroke
// debounce in draw mode and the fixed delay after an upload is placed.
type DebounceConfig struct {
	Stroke time.Duration `yaml:"stroke"`
	Upload time.Duration `yaml:"upload"`
}

func Default() Config {
	return Config{
		APIURL:  DefaultAPIURL,
		LogMode: "debug",
		Timeout: 30 * time.Second,
		Canvas: CanvasConfig{
			Width:     400,
			Height:    400,
			LineWidth: 20,
		},
		Debounce: DebounceConfig{
			Stroke: 800 * time.Millisecond,
			Upload: 500 * time.Millisecond,
		},
	}
}

// Load reads the YAML file at path on top of the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "can't read config %s", path)
		}
		if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "can't parse config %s", path)
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvLogMode); v != "" {
		cfg.LogMode = v
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api url %q", c.APIURL)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.LineWidth <= 0 {
		return fmt.Errorf("invalid line width %v", c.Canvas.LineWidth)
	}
	if c.Debounce.Stroke < 0 || c.Debounce.Upload < 0 {
		return errors.New("debounce delays can't be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %v", c.Timeout)
	}
	return nil
}
