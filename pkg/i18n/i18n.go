package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

// M holds placeholder values.
type M = map[string]any

// I18n is an immutable set of catalogs, safe for concurrent use.
type I18n struct {
	// key format: "lang:namespace:key.path"
	messages map[string]string

	onMissing func(lang, namespace, key string)

	matcher language.Matcher

	defaultLang string
	languages   []string
}

// Option configures an I18n during New.
type Option func(*I18n) error

// New builds an I18n from options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		messages:    make(map[string]string),
		defaultLang: DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("i18n: apply option: %w", err)
		}
	}

	// The default language always comes first so the matcher falls back to it.
	langs := []string{i.defaultLang}
	for _, l := range i.languages {
		if l != i.defaultLang && !slices.Contains(langs, l) {
			langs = append(langs, l)
		}
	}
	i.languages = langs

	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTag, l)
		}
		tags = append(tags, tag)
	}
	i.matcher = language.NewMatcher(tags)

	return i, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the languages offered to clients.
// The default language is always included.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		for _, l := range langs {
			if l != "" {
				i.languages = append(i.languages, l)
			}
		}
		return nil
	}
}

// WithTranslations adds a (possibly nested) catalog for lang and namespace.
func WithTranslations(lang, namespace string, messages map[string]any) Option {
	return func(i *I18n) error {
		return i.add(lang, namespace, messages)
	}
}

// WithMissingKeyHandler registers fn to be called when a key has no
// translation in any fallback language.
func WithMissingKeyHandler(fn func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.onMissing = fn
		return nil
	}
}

func (i *I18n) add(lang, namespace string, messages map[string]any) error {
	if lang == "" {
		return ErrEmptyLanguage
	}
	if namespace == "" {
		return ErrEmptyNamespace
	}
	for key, value := range flatten(messages, "") {
		i.messages[compositeKey(lang, namespace, key)] = value
	}
	return nil
}

// T translates key for lang. Placeholder maps are merged left to right.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	for _, l := range i.fallbacks(lang) {
		if msg, ok := i.messages[compositeKey(l, namespace, key)]; ok {
			return Replace(msg, merge(placeholders))
		}
	}

	if i.onMissing != nil {
		i.onMissing(lang, namespace, key)
	}
	return key
}

// Has reports whether key has a translation for lang or its fallbacks.
func (i *I18n) Has(lang, namespace, key string) bool {
	for _, l := range i.fallbacks(lang) {
		if _, ok := i.messages[compositeKey(l, namespace, key)]; ok {
			return true
		}
	}
	return false
}

// Languages returns the offered languages, default first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

// Match returns the offered language that best fits an Accept-Language
// header, or the default language when nothing fits.
func (i *I18n) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return i.defaultLang
	}
	_, idx, conf := i.matcher.Match(tags...)
	if conf == language.No {
		return i.defaultLang
	}
	return i.languages[idx]
}

// Supported returns the offered language matching lang exactly or by base
// language, and false when lang is not offered.
func (i *I18n) Supported(lang string) (string, bool) {
	if lang == "" {
		return "", false
	}
	for _, l := range i.languages {
		if strings.EqualFold(l, lang) {
			return l, true
		}
	}
	base := baseLanguage(lang)
	for _, l := range i.languages {
		if strings.EqualFold(baseLanguage(l), base) {
			return l, true
		}
	}
	return "", false
}

func (i *I18n) fallbacks(lang string) []string {
	chain := make([]string, 0, 3)
	chain = append(chain, lang)
	if base := baseLanguage(lang); base != lang {
		chain = append(chain, base)
	}
	if !slices.Contains(chain, i.defaultLang) {
		chain = append(chain, i.defaultLang)
	}
	return chain
}

func compositeKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

// baseLanguage strips the region: "pt-BR" becomes "pt".
func baseLanguage(lang string) string {
	if idx := strings.IndexByte(lang, '-'); idx > 0 {
		return lang[:idx]
	}
	return lang
}

func flatten(data map[string]any, prefix string) map[string]string {
	out := make(map[string]string)
	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			maps.Copy(out, flatten(v, full))
		case map[string]string:
			for k, s := range v {
				out[full+"."+k] = s
			}
		default:
			out[full] = fmt.Sprint(v)
		}
	}
	return out
}

func merge(placeholders []M) M {
	if len(placeholders) == 0 {
		return nil
	}
	if len(placeholders) == 1 {
		return placeholders[0]
	}
	out := make(M)
	for _, p := range placeholders {
		maps.Copy(out, p)
	}
	return out
}

// Replace substitutes {{name}} placeholders. Unknown placeholders are left as is.
func Replace(template string, values M) string {
	if len(values) == 0 || !strings.Contains(template, "{{") {
		return template
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
