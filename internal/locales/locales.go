// Package locales embeds the API translation catalogs.
package locales

import (
	"embed"

	"github.com/thermocore/leadapi/pkg/i18n"
)

// Namespace is the catalog every handler translates from.
const Namespace = "app"

// Languages offered to clients, default first.
var Languages = []string{"pt-BR", "en"}

//go:embed pt-BR en
var FS embed.FS

// Load builds the translation service. defaultLang falls back to pt-BR.
func Load(defaultLang string, opts ...i18n.Option) (*i18n.I18n, error) {
	if defaultLang == "" {
		defaultLang = Languages[0]
	}
	base := []i18n.Option{
		i18n.WithDefaultLanguage(defaultLang),
		i18n.WithLanguages(Languages...),
		i18n.WithYAMLDir(FS),
	}
	return i18n.New(append(base, opts...)...)
}
