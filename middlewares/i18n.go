package middlewares

import (
	"github.com/thermocore/leadapi/internal/web"
	"github.com/thermocore/leadapi/pkg/i18n"
)

type i18nConfig struct {
	namespace  string
	queryParam string
	cookieName string
}

// I18nOption configures I18n.
type I18nOption func(*i18nConfig)

// WithI18nNamespace sets the namespace of the request translator.
func WithI18nNamespace(ns string) I18nOption {
	return func(cfg *i18nConfig) {
		cfg.namespace = ns
	}
}

// WithI18nCookie sets the cookie holding an explicit language choice.
func WithI18nCookie(name string) I18nOption {
	return func(cfg *i18nConfig) {
		cfg.cookieName = name
	}
}

// I18n resolves the request language and stores a translator on the
// context. Sources, first match wins: ?lang, the lang cookie, then
// Accept-Language; unsupported values fall through to the default.
func I18n(svc *i18n.I18n, opts ...I18nOption) web.Middleware {
	cfg := &i18nConfig{
		namespace:  "app",
		queryParam: "lang",
		cookieName: "lang",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			web.SetTranslator(c, i18n.NewTranslator(svc, resolveLanguage(c, svc, cfg), cfg.namespace))
			return next(c)
		}
	}
}

func resolveLanguage(c web.Context, svc *i18n.I18n, cfg *i18nConfig) string {
	if lang, ok := svc.Supported(c.Request().URL.Query().Get(cfg.queryParam)); ok {
		return lang
	}
	if ck, err := c.Request().Cookie(cfg.cookieName); err == nil {
		if lang, ok := svc.Supported(ck.Value); ok {
			return lang
		}
	}
	if header := c.Header("Accept-Language"); header != "" {
		return svc.Match(header)
	}
	return svc.DefaultLanguage()
}
