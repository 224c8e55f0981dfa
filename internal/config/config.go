package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// keyReplacer maps nested config keys onto env var names, e.g.
// storage.driver -> TELLER_STORAGE_DRIVER.
var keyReplacer = strings.NewReplacer(".", "_")

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

// Load reads configuration from the given file path. If path is empty a
// config.yaml in the working directory is used when present; a missing
// config file falls back to defaults. Environment variables with a TELLER
// prefix override file values, e.g. TELLER_STORAGE_DRIVER=sqlite.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.path", "accounts.txt")
	v.SetDefault("log.level", "info")

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("TELLER")
	v.SetEnvKeyReplacer(keyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// An explicit config path must exist; the implicit default is
		// optional.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.Storage.Driver != DriverFile && c.Storage.Driver != DriverSQLite {
		return nil, fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return &c, nil
}
