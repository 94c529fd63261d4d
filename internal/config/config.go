package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"bookstores/internal/platform/bookstoreapi"
	"bookstores/internal/platform/restcountries"
	"bookstores/internal/storefront"
)

type Config struct {
	Addr string

	BookstoreAPIURL    string
	CountriesAPIURL    string
	UpstreamTimeout    time.Duration
	UpstreamRPS        float64
	ResolveParallelism int
	KindPolicy         storefront.KindPolicy

	// DBDSN and JWTSecret are optional. Without a DSN, runs and rating
	// changes are kept in memory; without a secret, requests are anonymous.
	DBDSN     string
	JWTSecret string

	CORSAllowedOrigins []string
	EnableHSTS         bool

	LogFormat string
	LogLevel  string

	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadEnvFiles reads .env and .env.local into the environment.
func LoadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// FromEnv builds a Config from the process environment.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		BookstoreAPIURL:    getEnv("BOOKSTORE_API_URL", bookstoreapi.DefaultBaseURL),
		CountriesAPIURL:    getEnv("COUNTRIES_API_URL", restcountries.DefaultBaseURL),
		DBDSN:              os.Getenv("DB_DSN"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.UpstreamRPS, err = getFloat("UPSTREAM_RPS", 5); err != nil {
		return Config{}, err
	}
	if cfg.ResolveParallelism, err = getInt("RESOLVE_PARALLELISM", 4); err != nil {
		return Config{}, err
	}
	if cfg.ResolveParallelism < 1 {
		return Config{}, fmt.Errorf("RESOLVE_PARALLELISM must be at least 1, got %d", cfg.ResolveParallelism)
	}
	if cfg.KindPolicy, err = storefront.ParseKindPolicy(getEnv("UNSUPPORTED_KIND_POLICY", "skip")); err != nil {
		return Config{}, fmt.Errorf("UNSUPPORTED_KIND_POLICY: %w", err)
	}
	if cfg.EnableHSTS, err = getBool("ENABLE_HSTS", false); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 10); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 20); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, v, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q: %w", key, v, err)
	}
	return f, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
