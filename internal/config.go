package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Store     StoreConfig       `yaml:"store"`
	Catalog   CatalogConfig     `yaml:"catalog"`
	Inbox     InboxConfig       `yaml:"inbox"`
	Providers ProvidersConfig   `yaml:"providers"`
	Auth      AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Providers.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port               int    `yaml:"port"`
	CORSOrigin         string `yaml:"cors_origin"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.RateLimitPerMinute, validation.Min(0)),
	)
}

// StoreConfig holds the path to the SQLite record store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// CatalogConfig holds the optional remote template catalog endpoint.
// An empty URL disables catalog fetching.
type CatalogConfig struct {
	URL string `yaml:"url"`
}

// InboxConfig holds the optional import inbox directory. Export files
// dropped there are merged automatically. Empty disables the watcher.
type InboxConfig struct {
	Path string `yaml:"path"`
}

// ProvidersConfig holds reply-generation provider configuration.
type ProvidersConfig struct {
	Default string       `yaml:"default"`
	OpenAI  OpenAIConfig `yaml:"openai"`
}

// Validate validates the providers configuration.
func (c *ProvidersConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Default, validation.Required, validation.In("rulebased", "openai")),
	)
}

// OpenAIConfig holds credentials for the remote OpenAI provider. The
// provider is always registered; without an API key it fails at call time.
type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port:               8080,
				CORSOrigin:         "*",
				RateLimitPerMinute: 20,
			},
		},
		Store: StoreConfig{
			Path: "./ansuz.db",
		},
		Providers: ProvidersConfig{
			Default: "rulebased",
			OpenAI: OpenAIConfig{
				Model: "gpt-3.5-turbo",
			},
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
