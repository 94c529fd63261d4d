package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstores/internal/platform/bookstoreapi"
	"bookstores/internal/platform/restcountries"
	"bookstores/internal/storefront"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ADDR", "BOOKSTORE_API_URL", "COUNTRIES_API_URL", "UPSTREAM_TIMEOUT", "UPSTREAM_RPS",
		"RESOLVE_PARALLELISM", "UNSUPPORTED_KIND_POLICY", "DB_DSN", "JWT_SECRET",
		"CORS_ALLOWED_ORIGINS", "ENABLE_HSTS", "LOG_FORMAT", "LOG_LEVEL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, bookstoreapi.DefaultBaseURL, cfg.BookstoreAPIURL)
	assert.Equal(t, restcountries.DefaultBaseURL, cfg.CountriesAPIURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 4, cfg.ResolveParallelism)
	assert.Equal(t, storefront.SkipUnsupported, cfg.KindPolicy)
	assert.Empty(t, cfg.DBDSN)
	assert.Empty(t, cfg.JWTSecret)
	assert.Nil(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.EnableHSTS)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("BOOKSTORE_API_URL", "http://stores.internal")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("RESOLVE_PARALLELISM", "8")
	t.Setenv("UNSUPPORTED_KIND_POLICY", "reject")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("ENABLE_HSTS", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "http://stores.internal", cfg.BookstoreAPIURL)
	assert.Equal(t, 2*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 8, cfg.ResolveParallelism)
	assert.Equal(t, storefront.RejectUnsupported, cfg.KindPolicy)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.EnableHSTS)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.0001)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "UPSTREAM_TIMEOUT", "soon"},
		{"bad parallelism", "RESOLVE_PARALLELISM", "many"},
		{"zero parallelism", "RESOLVE_PARALLELISM", "0"},
		{"bad policy", "UNSUPPORTED_KIND_POLICY", "ignore"},
		{"bad hsts", "ENABLE_HSTS", "maybe"},
		{"bad rps", "RATE_LIMIT_RPS", "fast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("APP_ADDR=:7000\nLOG_LEVEL=debug\n"), 0o644))

	t.Setenv("APP_ADDR", ":9000")
	t.Setenv("LOG_LEVEL", "")
	_ = os.Unsetenv("LOG_LEVEL")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	LoadEnvFiles()

	assert.Equal(t, ":9000", os.Getenv("APP_ADDR"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
}
