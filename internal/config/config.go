// Package config loads server settings from a YAML file and
// DEMORAS_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Storage struct {
	// Driver selects the repository backend: sqlite, postgres or memory.
	Driver string
	// Path is the database file for sqlite.
	Path string
	// DSN is the connection string for postgres.
	DSN string
}

type Collector struct {
	URL     string
	Timeout time.Duration
}

type Config struct {
	ListenAddr string
	Storage    Storage
	Collector  Collector
}

func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "demoras.db")
	v.SetDefault("collector.timeout_sec", 30)

	v.SetEnvPrefix("DEMORAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		ListenAddr: v.GetString("listen_addr"),
		Storage: Storage{
			Driver: v.GetString("storage.driver"),
			Path:   v.GetString("storage.path"),
			DSN:    v.GetString("storage.dsn"),
		},
		Collector: Collector{
			URL:     v.GetString("collector.url"),
			Timeout: time.Duration(v.GetInt("collector.timeout_sec")) * time.Second,
		},
	}

	switch cfg.Storage.Driver {
	case "sqlite", "postgres", "memory":
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return cfg, nil
}
