package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	AMQP   AMQPConfig   `mapstructure:"amqp"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

// AMQPConfig enables the order-event publisher when URL is set.
type AMQPConfig struct {
	URL        string        `mapstructure:"url"`
	Exchange   string        `mapstructure:"exchange"`
	RetryCount int           `mapstructure:"retryCount"`
	RetryDelay time.Duration `mapstructure:"retryDelay"`
}

// Enabled reports whether event publishing is configured.
func (c AMQPConfig) Enabled() bool {
	return c.URL != ""
}

// LoadConfig reads config.yaml (optional) with STOREFRONT_-prefixed
// environment variable overrides.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("/etc/storefront/")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "host=localhost port=5432 user=postgres password=postgres dbname=storefront sslmode=disable")
	v.SetDefault("db.maxOpenConns", 10)
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "storefront.events")
	v.SetDefault("amqp.retryCount", 3)
	v.SetDefault("amqp.retryDelay", 5*time.Second)

	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}
