package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearRuntimeEnv(t *testing.T) {
	t.Helper()
	for key := range runtimeKeys {
		t.Setenv(strings.ToUpper(key), "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearRuntimeEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, 168*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "INR", cfg.Razorpay.Currency)
	assert.Equal(t, 100.0, cfg.Razorpay.FallbackAmount)
	assert.Equal(t, 10_000_000.0, cfg.Razorpay.MaxAmount)
	assert.Equal(t, DefaultPricing(), cfg.Pricing)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearRuntimeEnv(t)
	t.Setenv("ENV", "staging")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "yes")
	t.Setenv("COOKIE_SAMESITE", "None")
	t.Setenv("RAZORPAY_KEY_ID", " rzp_test ")
	t.Setenv("PAYMENT_FALLBACK_AMOUNT", "250")
	t.Setenv("PAYMENT_MAX_AMOUNT", "50000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://eco.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "rzp_test", cfg.Razorpay.KeyID)
	assert.Equal(t, 250.0, cfg.Razorpay.FallbackAmount)
	assert.Equal(t, 50000.0, cfg.Razorpay.MaxAmount)
	assert.Equal(t, "https://eco.example.com", cfg.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad duration":       {"JWT_TTL": "soon"},
		"bad fallback":       {"PAYMENT_FALLBACK_AMOUNT": "abc"},
		"max too large":      {"PAYMENT_MAX_AMOUNT": "1e300"},
		"fallback above max": {"PAYMENT_FALLBACK_AMOUNT": "500", "PAYMENT_MAX_AMOUNT": "100"},
		"samesite none":      {"COOKIE_SAMESITE": "None"},
		"prod default jwt":   {"APP_ENV": "production"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			clearRuntimeEnv(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
