package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Assistant     AssistantConfig     `mapstructure:"assistant"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

// StorageConfig selects the snapshot document store. Driver is "sqlite"
// (default, Source is a file path) or "postgres" (Source is a DSN).
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Source string `mapstructure:"source"`
}

// AuthConfig declares the single account this personal instance serves.
type AuthConfig struct {
	Email               string        `mapstructure:"email"`
	PasswordHash        string        `mapstructure:"password_hash"`
	SessionSecret       string        `mapstructure:"session_secret"`
	AccessTokenDuration time.Duration `mapstructure:"access_token_duration"`
}

type AssistantConfig struct {
	APIURL    string        `mapstructure:"api_url"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if err := c.Auth.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("auth config: %v", err))
	}

	if err := c.Assistant.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("assistant config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		for _, origin := range strings.Split(c.AllowedOrigins, ",") {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("storage source is required")
	}
	return nil
}

func (c *AuthConfig) Validate() error {
	if c.Email == "" {
		return errors.New("auth email is required")
	}
	if c.PasswordHash == "" {
		return errors.New("auth password_hash is required")
	}
	if len(c.SessionSecret) < 32 {
		return errors.New("session secret must be at least 32 characters")
	}
	return nil
}

func (c *AssistantConfig) Validate() error {
	// The assistant endpoints degrade gracefully when unconfigured, but a
	// partially filled section is almost certainly a mistake.
	if c.APIURL == "" && c.APIKey != "" {
		return errors.New("assistant api_url is required when api_key is set")
	}
	return nil
}

// Enabled reports whether the AI helper endpoints can serve requests.
func (c *AssistantConfig) Enabled() bool {
	return c.APIURL != "" && c.APIKey != ""
}
