package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Gin      GinConfig      `mapstructure:"gin"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // sqlite or postgres
	DSN      string `mapstructure:"dsn"`
	LogLevel string `mapstructure:"log_level"` // silent, error, warn, info
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

// Load reads configuration from defaults, an optional config.yaml and the
// environment. An explicit configPath must exist.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetDefault("http.port", "8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "project.db")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("gin.mode", "release")

	v.SetEnvPrefix("REVIEWBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed overrides
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		v.Set("database.dsn", dsn)
	}
	if port := os.Getenv("HTTP_PORT"); port != "" {
		v.Set("http.port", port)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is empty")
	}
	if c.HTTP.Port == "" {
		return fmt.Errorf("http port is empty")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.HTTP.Port
}
