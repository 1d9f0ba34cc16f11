package mailer

import (
	"strings"
	texttemplate "text/template"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
	"#", `\#`, "|", `\|`, "~", `\~`,
)

var funcs = texttemplate.FuncMap{
	"escape":  Escape,
	"default": defaultValue,
	"quote":   quote,
}

// Escape backslash-escapes markdown control characters so user input renders
// literally.
func Escape(s string) string {
	return mdEscaper.Replace(s)
}

func defaultValue(fallback, v string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// quote renders s as a markdown blockquote, escaping each line.
func quote(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + Escape(l)
	}
	return strings.Join(lines, "\n")
}
