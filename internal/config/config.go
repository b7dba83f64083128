// Package config loads the comments server configuration from defaults,
// an optional YAML file, environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. COMMENTS_MONGO_URI.
const EnvPrefix = "COMMENTS"

// Storage backends.
const (
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// Config holds server configuration.
type Config struct {
	Port            int           `mapstructure:"port"`
	Backend         string        `mapstructure:"backend"`
	BasePath        string        `mapstructure:"base_path"`
	DevMode         bool          `mapstructure:"dev_mode"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Mongo           MongoConfig   `mapstructure:"mongo"`
	SQLite          SQLiteConfig  `mapstructure:"sqlite"`
}

// MongoConfig selects the MongoDB collection holding comments.
type MongoConfig struct {
	URI        string        `mapstructure:"uri"`
	Database   string        `mapstructure:"database"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// SQLiteConfig locates the SQLite database. An empty path means db.DefaultPath.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// New returns a viper instance with defaults and environment binding.
// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("backend", BackendMongo)
	v.SetDefault("base_path", "/api/comments")
	v.SetDefault("dev_mode", false)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "comments")
	v.SetDefault("mongo.collection", "comments")
	v.SetDefault("mongo.timeout", 10*time.Second)
	v.SetDefault("sqlite.path", "")

	return v
}

// Load reads the optional config file at path into v and decodes the result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", c.Port)
	}
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /, got %q", c.BasePath)
	}
	if c.ShutdownTimeout < 0 {
		return errors.New("shutdown_timeout must not be negative")
	}

	switch c.Backend {
	case BackendMongo:
		if c.Mongo.URI == "" {
			return errors.New("mongo.uri is required for the mongo backend")
		}
		if c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return errors.New("mongo.database and mongo.collection are required for the mongo backend")
		}
	case BackendSQLite:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendMongo, BackendSQLite, c.Backend)
	}

	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
