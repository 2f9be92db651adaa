package util

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

type Config struct {
	Environment       string        `mapstructure:"ENVIRONMENT" validate:"required,oneof=development production test"`
	HTTPServerAddress string        `mapstructure:"HTTP_SERVER_ADDRESS" validate:"required"`
	RedisAddress      string        `mapstructure:"REDIS_ADDRESS"`
	RenderCacheTTL    time.Duration `mapstructure:"RENDER_CACHE_TTL" validate:"gte=0"`
	MaxInputBytes     int           `mapstructure:"MAX_INPUT_BYTES" validate:"gt=0"`
	DefaultBackend    string        `mapstructure:"DEFAULT_BACKEND" validate:"oneof=stack commonmark"`
	EmojiEnabled      bool          `mapstructure:"EMOJI_ENABLED"`
	AllowedOrigins    []string      `mapstructure:"ALLOWED_ORIGINS"`
}

var defaults = map[string]any{
	"ENVIRONMENT":         EnvironmentDevelopment,
	"HTTP_SERVER_ADDRESS": "http://0.0.0.0:8080",
	"REDIS_ADDRESS":       "",
	"RENDER_CACHE_TTL":    10 * time.Minute,
	"MAX_INPUT_BYTES":     64 * 1024,
	"DEFAULT_BACKEND":     "stack",
	"EMOJI_ENABLED":       false,
	"ALLOWED_ORIGINS":     []string{"*"},
}

// LoadConfig reads app.env from path, overridden by environment variables.
// A missing app.env is not an error: defaults and the environment are used.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			err = fmt.Errorf("cannot read config file: %w", err)
			return
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		err = fmt.Errorf("cannot decode config: %w", err)
		return
	}

	err = config.Validate()
	return
}

// Validate checks the config values.
func (config *Config) Validate() error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, _, err := config.ExtractHostPort(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// IsDevelopment reports whether the service runs in the development environment.
func (config *Config) IsDevelopment() bool {
	return config.Environment == EnvironmentDevelopment
}

// ExtractHostPort parses the HTTP server address and returns the host and port components.
// The scheme is optional. If no port is specified, port will be an empty string.
func (config *Config) ExtractHostPort() (host string, port string, err error) {
	addr := config.HTTPServerAddress
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	u, err := url.Parse(addr)
	if err != nil {
		err = fmt.Errorf("error parsing http server url: %w", err)
		return
	}

	host = u.Hostname()
	if host == "" {
		err = fmt.Errorf("http server url %q has no host", config.HTTPServerAddress)
		return
	}

	port = u.Port()
	return
}

// ListenAddress returns the host:port the HTTP server listens on.
// Port 80 is used when the address has none.
func (config *Config) ListenAddress() (string, error) {
	host, port, err := config.ExtractHostPort()
	if err != nil {
		return "", err
	}
	if port == "" {
		port = "80"
	}
	return net.JoinHostPort(host, port), nil
}
