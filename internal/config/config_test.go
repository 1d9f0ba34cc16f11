package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermocore/leadapi/internal/config"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Parse(env.Options{Environment: map[string]string{}})
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.HTTP.Addr)
		assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
		assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
		assert.Equal(t, 5, cfg.RateLimit.Max)
		assert.Equal(t, time.Hour, cfg.RateLimit.Window)
		assert.Equal(t, 100000, cfg.RateLimit.MaxEntries)
		assert.Equal(t, 5*time.Minute, cfg.RateLimit.SweepInterval)
		assert.Equal(t, 10*time.Second, cfg.Contact.SendTimeout)
		assert.Equal(t, "pt-BR", cfg.DefaultLanguage)
		assert.Equal(t, "pt-BR", cfg.Mailer.DefaultLanguage)
		assert.False(t, cfg.Resend.Enabled())
		assert.False(t, cfg.DB.Enabled())
		assert.False(t, cfg.Storage.Enabled())
		assert.False(t, cfg.Consent.Enabled())
		assert.False(t, cfg.IsDevelopment())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Parse(env.Options{Environment: map[string]string{
			"HTTP_ADDR":              ":9000",
			"CORS_ALLOWED_ORIGINS":   "https://thermocore.com.br,https://www.thermocore.com.br",
			"RATE_LIMIT_MAX":         "10",
			"RATE_LIMIT_WINDOW":      "30m",
			"RESEND_API_KEY":         "re_123",
			"CONTACT_NOTIFY_TO":      "leads@thermocore.com.br",
			"COOKIE_SECRET":          "0123456789abcdef0123456789abcdef",
			"CONSENT_POLICY_VERSION": "2025-06",
			"S3_BUCKET":              "uploads",
			"DATABASE_URL":           "postgres://localhost/leadapi",
			"APP_ENV":                "development",
		}})
		require.NoError(t, err)

		assert.Equal(t, ":9000", cfg.HTTP.Addr)
		assert.Equal(t, []string{"https://thermocore.com.br", "https://www.thermocore.com.br"}, cfg.HTTP.AllowedOrigins)
		assert.Equal(t, 10, cfg.RateLimit.Max)
		assert.Equal(t, 30*time.Minute, cfg.RateLimit.Window)
		assert.True(t, cfg.Resend.Enabled())
		assert.Equal(t, "leads@thermocore.com.br", cfg.Contact.NotifyTo)
		assert.True(t, cfg.Consent.Enabled())
		assert.Equal(t, "2025-06", cfg.Consent.PolicyVersion)
		assert.True(t, cfg.Storage.Enabled())
		assert.True(t, cfg.DB.Enabled())
		assert.True(t, cfg.IsDevelopment())
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse(env.Options{Environment: map[string]string{"RATE_LIMIT_WINDOW": "soon"}})
		require.ErrorIs(t, err, config.ErrParse)
	})

	t.Run("resend without recipient", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse(env.Options{Environment: map[string]string{"RESEND_API_KEY": "re_123"}})
		require.ErrorIs(t, err, config.ErrMissingNotify)
	})

	t.Run("short cookie secret", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse(env.Options{Environment: map[string]string{"COOKIE_SECRET": "short"}})
		require.ErrorIs(t, err, config.ErrCookieSecret)
	})
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LEADAPI_TEST_ORIGIN=https://a.example\nHTTP_ADDR=:7070\n"), 0o600))

	t.Setenv("HTTP_ADDR", ":6060")
	t.Setenv("LEADAPI_TEST_ORIGIN", "")
	require.NoError(t, os.Unsetenv("LEADAPI_TEST_ORIGIN"))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":6060", cfg.HTTP.Addr)
	assert.Equal(t, "https://a.example", os.Getenv("LEADAPI_TEST_ORIGIN"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}
