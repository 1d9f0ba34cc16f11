package mailer

// Config holds mailer configuration, parsed from the environment with
// caarlos0/env.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Contato"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
	DefaultLanguage string `env:"MAILER_DEFAULT_LANGUAGE" envDefault:"pt-BR"`
}
