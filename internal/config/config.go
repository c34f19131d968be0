package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort      = 5000
	DefaultDatabase      = "task_manager"
	DefaultRetryInterval = 5 * time.Second
	DefaultMongoURIEnv   = "MONGO_URI"
)

// Config holds the configuration parsed from the `server:` section of
// config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server-side settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API and WebSocket hub listen on
	// (default 5000). A PORT environment variable, when set, takes
	// precedence over the file value.
	HTTPPort int `yaml:"http_port"`

	// Mongo configures the document store connection.
	Mongo MongoConfig `yaml:"mongo"`

	// Notify holds outbound webhook targets for task mutation events.
	Notify NotifyConfig `yaml:"notify"`
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URIEnv is the name of the environment variable that holds the
	// connection string. Defaults to "MONGO_URI". The URI itself never
	// appears in the config file.
	URIEnv string `yaml:"uri_env"`

	// Database is the database name (default "task_manager").
	Database string `yaml:"database"`

	// RetryInterval is the fixed delay between connection attempts while
	// the initial handshake keeps failing. Default: 5s.
	RetryInterval time.Duration `yaml:"retry_interval"`
}

// URI returns the connection string resolved from the environment.
func (m MongoConfig) URI() string {
	if m.URIEnv == "" {
		return ""
	}
	return os.Getenv(m.URIEnv)
}

// NotifyConfig holds webhook delivery targets for task mutation events.
type NotifyConfig struct {
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: slack | teams | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable that holds the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Load reads and parses the config file at path, returning the server
// configuration. Missing fields are filled with sensible defaults before
// validation. An empty path skips the file entirely and returns defaults,
// so a purely env-driven deployment needs no config file at all.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("server config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("server config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			Mongo: MongoConfig{
				URIEnv:        DefaultMongoURIEnv,
				Database:      DefaultDatabase,
				RetryInterval: DefaultRetryInterval,
			},
		},
	}
}

// applyEnv applies environment overrides that take precedence over the file.
// PORT mirrors the conventional hosting-platform variable.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT %q is not a number", v)
		}
		cfg.Server.HTTPPort = port
	}
	return nil
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	if cfg.Server.Mongo.RetryInterval <= 0 {
		return fmt.Errorf("server.mongo.retry_interval must be positive")
	}
	for _, wh := range cfg.Server.Notify.Webhooks {
		switch wh.Type {
		case "slack", "teams", "http":
		default:
			return fmt.Errorf("server.notify webhook type %q unknown: want slack|teams|http", wh.Type)
		}
	}
	return nil
}
