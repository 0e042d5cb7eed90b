package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultMongoURI     = "mongodb://localhost:27017/course_database"
	DefaultDatabaseName = "course_database"
)

var (
	ErrMissingMongoURI = errors.New("MONGO_URI must not be empty")
	ErrInvalidPort     = errors.New("PORT must be a positive number")
)

// Config holds everything the server and the coursectl tool read from the
// environment.
type Config struct {
	MongoURI     string `koanf:"mongo_uri"`
	DatabaseName string `koanf:"mongodb_db"`
	Port         int    `koanf:"port"`
	LogLevel     string `koanf:"log_level"`
	LogPretty    bool   `koanf:"log_pretty"`
}

// Only these variables are read from the process environment.
var envKeys = map[string]bool{
	"MONGO_URI":  true,
	"MONGODB_DB": true,
	"PORT":       true,
	"LOG_LEVEL":  true,
	"LOG_PRETTY": true,
}

func defaultConfig() Config {
	return Config{
		MongoURI:  DefaultMongoURI,
		Port:      8080,
		LogLevel:  "info",
		LogPretty: false,
	}
}

/*
Load builds the configuration in three layers:
- struct defaults
- a .env file in the working directory, when there is one
- process environment variables

The database name comes from MONGODB_DB when set, otherwise from the path of
the connection string, otherwise DefaultDatabaseName.
*/
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	// Unknown and empty variables are skipped so they never mask a default.
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if !envKeys[key] || strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.DatabaseName == "" {
		cfg.DatabaseName = DatabaseFromURI(cfg.MongoURI)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.MongoURI) == "" {
		return ErrMissingMongoURI
	}
	if c.Port <= 0 {
		return ErrInvalidPort
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DatabaseFromURI returns the default database named in a mongodb:// or
// mongodb+srv:// connection string.
func DatabaseFromURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return DefaultDatabaseName
	}
	name := strings.TrimPrefix(parsed.Path, "/")
	if name == "" {
		return DefaultDatabaseName
	}
	return name
}
