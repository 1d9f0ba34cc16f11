// Package i18n holds translated message catalogs and picks a language for
// a request.
//
// Catalogs are keyed by language, namespace and a dotted key path. They are
// usually loaded from an embedded directory of YAML files laid out as
// {lang}/{namespace}.yaml:
//
//	//go:embed locales
//	var locales embed.FS
//
//	sub, _ := fs.Sub(locales, "locales")
//	bundle, err := i18n.New(
//	    i18n.WithDefaultLanguage("pt-BR"),
//	    i18n.WithLanguages("pt-BR", "en"),
//	    i18n.WithYAMLDir(sub),
//	)
//
// Lookups fall back from the exact language to its base language and then
// to the default language; a key with no translation anywhere is returned
// unchanged. Placeholders use the {{name}} syntax.
//
// Match negotiates an Accept-Language header against the configured
// languages with golang.org/x/text/language.
package i18n
