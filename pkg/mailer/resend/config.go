package resend

// Config holds Resend credentials and the default sender identity.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL" envDefault:"contato@thermocore.com.br"`
	SenderName  string `env:"RESEND_FROM_NAME" envDefault:"Thermocore"`
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
