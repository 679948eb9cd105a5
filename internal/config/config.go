package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "VOLUNTEER"
	productionEnv     = "production"
	minTokenSecretLen = 32
)

var (
	ErrMissingTokenSecret = errors.New("auth.token_secret is required")
	ErrShortTokenSecret   = fmt.Errorf("auth.token_secret must be at least %d bytes", minTokenSecretLen)
	ErrMissingMongoURI    = errors.New("mongo.uri is required")
)

type Config struct {
	Server struct {
		Addr         string        `mapstructure:"addr"`
		Mode         string        `mapstructure:"mode"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
	} `mapstructure:"server"`

	App struct {
		// Env is the deployment environment; "production" switches cookies to Secure + SameSite=None.
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`

	Auth struct {
		TokenSecret string        `mapstructure:"token_secret"`
		TokenTTL    time.Duration `mapstructure:"token_ttl"`
		CookieName  string        `mapstructure:"cookie_name"`
	} `mapstructure:"auth"`

	Mongo struct {
		URI      string        `mapstructure:"uri"`
		Database string        `mapstructure:"database"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"mongo"`

	Redis struct {
		URL      string `mapstructure:"url"`
		PoolSize int    `mapstructure:"pool_size"`
	} `mapstructure:"redis"`

	Observability struct {
		MetricsEnabled     bool   `mapstructure:"metrics_enabled"`
		TraceEnabled       bool   `mapstructure:"trace_enabled"`
		TracingEndpointURL string `mapstructure:"tracing_endpoint_url"`
		LogLevel           string `mapstructure:"log_level"`
		Format             string `mapstructure:"log_format"`
		LogSource          bool   `mapstructure:"log_source"`
	} `mapstructure:"observability"`

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

// IsProduction reports whether cookies must be issued for cross-site HTTPS use.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, productionEnv)
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	switch {
	case c.Auth.TokenSecret == "":
		return ErrMissingTokenSecret
	case len(c.Auth.TokenSecret) < minTokenSecretLen:
		return ErrShortTokenSecret
	case c.Mongo.URI == "":
		return ErrMissingMongoURI
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("app.env", "development")
	v.SetDefault("auth.token_secret", "")
	v.SetDefault("auth.token_ttl", 365*24*time.Hour)
	v.SetDefault("auth.cookie_name", "token")
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "volunteerManagement")
	v.SetDefault("mongo.timeout", 10*time.Second)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("observability.metrics_enabled", false)
	v.SetDefault("observability.trace_enabled", false)
	v.SetDefault("observability.tracing_endpoint_url", "")
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.log_format", "json")
	v.SetDefault("observability.log_source", false)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})
}

// bindLegacyEnv keeps the variable names existing deployments already export.
func bindLegacyEnv(v *viper.Viper) error {
	legacy := map[string]string{
		"auth.token_secret": "ACCESS_TOKEN_SECRET",
		"app.env":           "NODE_ENV",
		"mongo.uri":         "MONGODB_URI",
	}
	for key, name := range legacy {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, name); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// Load reads configuration from config/config.yaml, an optional APP_ENV overlay and the
// environment. A .env file in the working directory is loaded into the environment first.
func Load() (*Config, error) {
	logger := slog.Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		logger.Info("No config file found, using defaults and environment")
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		v.SetConfigName(fmt.Sprintf("config.%s", env))
		if err := v.MergeInConfig(); err != nil {
			logger.Info("No environment-specific config (optional)", slog.String("env", env))
		} else {
			logger.Info("Environment-specific config loaded", slog.String("env", env))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad is Load for process startup: any configuration error terminates the process.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		slog.Default().Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}
