// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/thermocore/leadapi/pkg/db"
	"github.com/thermocore/leadapi/pkg/logger"
	"github.com/thermocore/leadapi/pkg/mailer"
	"github.com/thermocore/leadapi/pkg/mailer/resend"
	"github.com/thermocore/leadapi/pkg/redis"
	"github.com/thermocore/leadapi/pkg/storage"
)

var (
	ErrParse         = errors.New("config: parse environment")
	ErrMissingNotify = errors.New("config: CONTACT_NOTIFY_TO is required when RESEND_API_KEY is set")
	ErrCookieSecret  = errors.New("config: COOKIE_SECRET must be at least 32 bytes")
)

// Config is the full service configuration.
type Config struct {
	Logger  logger.Config
	Sentry  logger.SentryConfig
	Redis   redis.Config
	DB      db.Config
	Storage storage.Config
	Resend  resend.Config
	Mailer  mailer.Config

	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	Contact   ContactConfig
	Consent   ConsentConfig

	AppEnv          string `env:"APP_ENV" envDefault:"production"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"pt-BR"`
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// RateLimitConfig maps onto the ratelimit options.
type RateLimitConfig struct {
	Max           int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	Window        time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
	MaxEntries    int           `env:"RATE_LIMIT_MAX_ENTRIES" envDefault:"100000"`
	SweepInterval time.Duration `env:"RATE_LIMIT_SWEEP_INTERVAL" envDefault:"5m"`
}

type ContactConfig struct {
	NotifyTo    string        `env:"CONTACT_NOTIFY_TO"`
	SendTimeout time.Duration `env:"MAIL_SEND_TIMEOUT" envDefault:"10s"`
	JobWorkers  int           `env:"JOB_WORKERS" envDefault:"2"`
}

type ConsentConfig struct {
	CookieSecret  string `env:"COOKIE_SECRET"`
	PolicyVersion string `env:"CONSENT_POLICY_VERSION" envDefault:"1"`
	SecureCookie  bool   `env:"COOKIE_SECURE" envDefault:"true"`
}

// Enabled reports whether consent cookies can be signed.
func (c ConsentConfig) Enabled() bool {
	return c.CookieSecret != ""
}

// IsDevelopment reports whether APP_ENV names a local environment.
func (c Config) IsDevelopment() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	}
	return false
}

// Load reads an optional .env file from the working directory, then parses
// the process environment. Variables already set win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return Parse(env.Options{})
}

// Parse reads Config from the environment described by opts. Tests set
// opts.Environment instead of touching the process environment.
func Parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, errors.Join(ErrParse, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Resend.Enabled() && c.Contact.NotifyTo == "" {
		errs = append(errs, ErrMissingNotify)
	}
	if c.Consent.Enabled() && len(c.Consent.CookieSecret) < 32 {
		errs = append(errs, ErrCookieSecret)
	}
	return errors.Join(errs...)
}
