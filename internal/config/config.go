package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	DefaultCartMax        = "10"
	DefaultCartTopic      = "cart_events"
	DefaultRateLimit      = 120
	DefaultServerPort     = 8080
	DefaultServiceName    = "cart"
	maxQuantityDecimalPos = 1
	maxQuantityIntDigits  = 9
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string

	JWTAccessSecret []byte

	// CartMax is SHOPPING_CART_MAX, the largest quantity a single cart line may hold.
	CartMax decimal.Decimal

	KafkaBrokers   []string
	KafkaCartTopic string

	RedisAddr          string
	RedisPassword      string
	RateLimitPerMinute int
}

// LoadDotEnv loads the given files into the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			log.Printf("notice: %s not loaded (%v), using system environment", f, err)
		}
	}
}

func Load() (Config, error) {
	cartMax, err := ParseCartMax(EnvDefault("SHOPPING_CART_MAX", DefaultCartMax))
	if err != nil {
		return Config{}, err
	}

	port, err := EnvIntDefault("SERVER_PORT", DefaultServerPort)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := EnvIntDefault("RATE_LIMIT_PER_MINUTE", DefaultRateLimit)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServiceName: EnvDefault("SERVICE_NAME", DefaultServiceName),
		ServerPort:  port,
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret: []byte(os.Getenv("JWT_SECRET")),

		CartMax: cartMax,

		KafkaBrokers:   CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaCartTopic: EnvDefault("KAFKA_CART_TOPIC", DefaultCartTopic),

		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RateLimitPerMinute: rateLimit,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("missing required env DATABASE_URL")
	}
	if len(c.JWTAccessSecret) == 0 {
		return fmt.Errorf("missing required env JWT_SECRET")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	return nil
}

func (c Config) EventsEnabled() bool { return len(c.KafkaBrokers) > 0 }

func (c Config) RateLimitEnabled() bool { return c.RedisAddr != "" }

func ParseCartMax(raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("SHOPPING_CART_MAX %q is not a decimal: %w", raw, err)
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("SHOPPING_CART_MAX must be greater than 0, got %q", raw)
	}
	if v.Exponent() < -maxQuantityDecimalPos {
		return decimal.Zero, fmt.Errorf("SHOPPING_CART_MAX may have at most one decimal place, got %q", raw)
	}
	if v.NumDigits()+int(v.Exponent()) > maxQuantityIntDigits {
		return decimal.Zero, fmt.Errorf("SHOPPING_CART_MAX must fit numeric(10,1), got %q", raw)
	}
	return v, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvIntDefault returns def when key is unset and an error when it is set
// but not an integer.
func EnvIntDefault(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer: %w", key, v, err)
	}
	return n, nil
}
