package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the process configuration.
type Config struct {
	Port           string
	Env            string
	DeliveryOffset time.Duration

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	AllowedOrigins []string

	RabbitMQURL string

	RedisAddr    string
	MenuCacheTTL time.Duration

	OrderRateLimit float64
	OrderRateBurst int

	SeedMenu bool
}

// ListenAddr is the address handed to fiber's Listen.
func (c Config) ListenAddr() string {
	return ":" + c.Port
}

// Development reports whether development logging is wanted.
func (c Config) Development() bool {
	return c.Env == "development"
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("DELIVERY_OFFSET", "30m")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=foodorder port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("JWT_AUDIENCE", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://web4-1-u5st.onrender.com")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("MENU_CACHE_TTL", "5m")
	v.SetDefault("ORDER_RATE_LIMIT", 0)
	v.SetDefault("ORDER_RATE_BURST", 5)
	v.SetDefault("SEED_MENU", false)
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:           v.GetString("PORT"),
		Env:            v.GetString("APP_ENV"),
		DeliveryOffset: v.GetDuration("DELIVERY_OFFSET"),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		JWTAudience:    v.GetString("JWT_AUDIENCE"),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		MenuCacheTTL:   v.GetDuration("MENU_CACHE_TTL"),
		OrderRateLimit: v.GetFloat64("ORDER_RATE_LIMIT"),
		OrderRateBurst: v.GetInt("ORDER_RATE_BURST"),
		SeedMenu:       v.GetBool("SEED_MENU"),
	}

	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET must be set")
	}
	if cfg.DeliveryOffset <= 0 {
		return cfg, fmt.Errorf("DELIVERY_OFFSET must be positive, got %q", v.GetString("DELIVERY_OFFSET"))
	}
	switch cfg.DatabaseDriver {
	case "postgres", "sqlite", "memory":
	default:
		return cfg, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if len(cfg.AllowedOrigins) == 0 {
		return cfg, errors.New("CORS_ALLOWED_ORIGINS must name at least one origin")
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			return cfg, errors.New("CORS_ALLOWED_ORIGINS cannot contain * when credentials are allowed")
		}
	}
	if cfg.OrderRateLimit < 0 {
		return cfg, errors.New("ORDER_RATE_LIMIT cannot be negative")
	}
	if cfg.OrderRateBurst < 1 {
		cfg.OrderRateBurst = 1
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
