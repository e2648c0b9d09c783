// Package config loads the application configuration from YAML and validates
// it before anything else starts.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
	"github.com/quantlens/quantlens/pkg/marketdata"
)

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Host         string         `yaml:"host"`
	Port         int            `yaml:"port" validate:"required,min=1,max=65535"`
	ReadTimeout  types.Duration `yaml:"read_timeout"`
	WriteTimeout types.Duration `yaml:"write_timeout"`
}

// UniverseConfig configures symbol universe resolution.
type UniverseConfig struct {
	// IndexURL overrides the NSE index CSV location. Empty uses the default.
	IndexURL string `yaml:"index_url"`
	// Symbols bypasses network sources entirely when non-empty.
	Symbols []string `yaml:"symbols"`
}

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig            `yaml:"server"`
	MarketData marketdata.ClientConfig `yaml:"market_data"`
	Universe   UniverseConfig          `yaml:"universe"`
	// StorePath is the DuckDB file used by the fetch command. Empty means
	// in-memory.
	StorePath string `yaml:"store_path"`
}

// DefaultConfig returns a configuration that works without a config file.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			ReadTimeout:  types.Duration(10 * time.Second),
			WriteTimeout: types.Duration(30 * time.Second),
		},
		MarketData: marketdata.DefaultClientConfig(),
		Universe:   UniverseConfig{},
		StorePath:  "",
	}
}

// Parse unmarshals a YAML document over the defaults and validates the
// result.
func Parse(data []byte) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Load reads and parses the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return Parse(data)
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return c.MarketData.Validate()
}
