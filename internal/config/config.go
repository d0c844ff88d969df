package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultFile is read from the working directory when present.
const DefaultFile = "ricemap.yaml"

// Config is built once at startup and never modified afterwards.
type Config struct {
	Address         string        `yaml:"address"`
	DataPath        string        `yaml:"data_path"`
	Debug           bool          `yaml:"debug"`
	H2C             bool          `yaml:"h2c"`
	CORS            bool          `yaml:"cors"`
	RateLimit       float64       `yaml:"rate_limit"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	TopChartLimit   int           `yaml:"top_chart_limit"`
}

func Default() Config {
	return Config{
		Address:         "127.0.0.1:8050",
		DataPath:        "rice_production_by_country.csv",
		Debug:           true,
		CORS:            true,
		RateLimit:       20,
		ShutdownTimeout: 10 * time.Second,
		TopChartLimit:   15,
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Address == "":
		return errors.New("address is empty")
	case c.DataPath == "":
		return errors.New("data_path is empty")
	case c.RateLimit < 0:
		return fmt.Errorf("rate_limit must be >= 0, got %v", c.RateLimit)
	case c.TopChartLimit <= 0:
		return fmt.Errorf("top_chart_limit must be > 0, got %d", c.TopChartLimit)
	}
	return nil
}
