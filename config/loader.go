package config

import (
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath        = "pohoda.yml"
	DefaultApplication = "Pohoda Go connector"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads the first readable file among paths (pohoda.yml when
// none is given), validates it and stores it in Config.
func LoadAppConfig(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultPath}
	}
	var data []byte
	err := error(fs.ErrNotExist)
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = *cfg
	return nil
}

// Load reads and validates a single configuration file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML configuration, validates it and applies defaults.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	if cfg.Application == "" {
		cfg.Application = DefaultApplication
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	return &cfg, nil
}
