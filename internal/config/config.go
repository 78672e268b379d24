package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	RateLimitOff    = "off"
	RateLimitMemory = "memory"
	RateLimitRedis  = "redis"
)

type Config struct {
	App       AppConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Port            string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// TrustProxyHeaders makes X-Forwarded-For / X-Real-IP the client address.
	TrustProxyHeaders bool
}

func (a AppConfig) Addr() string {
	return ":" + a.Port
}

type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Backend string
	RPS     float64
	Burst   int
	Window  time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

var defaults = map[string]any{
	"port":                  "5000",
	"log_level":             "info",
	"log_format":            "json",
	"shutdown_timeout":      "10s",
	"trust_proxy_headers":   false,
	"mongo_uri":             "",
	"mongo_database":        "product_db",
	"mongo_collection":      "products",
	"mongo_connect_timeout": "10s",
	"mongo_query_timeout":   "5s",
	"redis_addr":            "",
	"redis_password":        "",
	"redis_db":              0,
	"rate_limit_backend":    RateLimitOff,
	"rate_limit_rps":        5.0,
	"rate_limit_burst":      10,
	"rate_limit_window":     "1s",
	"cors_origins":          "*",
}

// Load reads an optional config.yaml (from . or ./configs) and lets environment
// variables override every key, e.g. MONGO_URI or RATE_LIMIT_BACKEND.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Port:              v.GetString("port"),
			LogLevel:          v.GetString("log_level"),
			LogFormat:         v.GetString("log_format"),
			ShutdownTimeout:   v.GetDuration("shutdown_timeout"),
			TrustProxyHeaders: v.GetBool("trust_proxy_headers"),
		},
		Mongo: MongoConfig{
			URI:            v.GetString("mongo_uri"),
			Database:       v.GetString("mongo_database"),
			Collection:     v.GetString("mongo_collection"),
			ConnectTimeout: v.GetDuration("mongo_connect_timeout"),
			QueryTimeout:   v.GetDuration("mongo_query_timeout"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		RateLimit: RateLimitConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("rate_limit_backend"))),
			RPS:     v.GetFloat64("rate_limit_rps"),
			Burst:   v.GetInt("rate_limit_burst"),
			Window:  v.GetDuration("rate_limit_window"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("cors_origins")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Mongo.URI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.App.Port == "" {
		return errors.New("PORT must not be empty")
	}
	switch c.RateLimit.Backend {
	case RateLimitOff:
	case RateLimitMemory:
		if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
			return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
		}
	case RateLimitRedis:
		if c.Redis.Addr == "" {
			return errors.New("REDIS_ADDR is required when RATE_LIMIT_BACKEND=redis")
		}
		if c.RateLimit.Burst <= 0 || c.RateLimit.Window <= 0 {
			return errors.New("RATE_LIMIT_BURST and RATE_LIMIT_WINDOW must be positive")
		}
	default:
		return fmt.Errorf("unknown RATE_LIMIT_BACKEND %q", c.RateLimit.Backend)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
