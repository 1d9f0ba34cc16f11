package contact

import (
	"slices"
	"strings"

	"github.com/thermocore/leadapi/pkg/sanitizer"
)

// Sanitize turns an untrusted form body into a Submission. Missing or
// non-string fields become empty, markup is stripped, whitespace is
// collapsed (message keeps its paragraphs) and the email is lower-cased.
// Unknown fields are dropped. Sanitize(Sanitize(x).Map()) == Sanitize(x).
func Sanitize(raw map[string]any) Submission {
	line := func(field string) string {
		return sanitizer.Line(str(raw[field]))
	}

	return Submission{
		Name:     line(FieldName),
		Email:    sanitizer.Email(str(raw[FieldEmail])),
		Phone:    line(FieldPhone),
		Company:  line(FieldCompany),
		Position: line(FieldPosition),
		City:     line(FieldCity),
		Service:  line(FieldService),
		Urgency:  urgency(line(FieldUrgency)),
		Message:  sanitizer.Paragraphs(str(raw[FieldMessage])),
		Files:    files(raw[FieldFiles]),
	}
}

// Honeypot reports whether the hidden field carries anything.
func Honeypot(raw map[string]any) bool {
	switch v := raw[HoneypotField].(type) {
	case nil:
		return false
	case string:
		return sanitizer.Line(v) != ""
	default:
		return true
	}
}

// urgencyLabels maps the Portuguese labels the site's form posts to
// urgency levels.
var urgencyLabels = map[string]string{
	"baixa":   "low",
	"média":   "normal",
	"media":   "normal",
	"alta":    "high",
	"crítica": "critical",
	"critica": "critical",
	"urgente": "critical",
}

// urgency folds case and maps Portuguese labels to a level from Urgencies.
// Anything else is returned untouched for Validate to reject.
func urgency(s string) string {
	folded := strings.ToLower(s)
	if slices.Contains(Urgencies, folded) {
		return folded
	}
	if level, ok := urgencyLabels[folded]; ok {
		return level
	}
	return s
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func files(v any) []string {
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []string:
		for _, s := range list {
			items = append(items, s)
		}
	}

	out := make([]string, 0, min(len(items), MaxFiles))
	for _, item := range items {
		if len(out) == MaxFiles {
			break
		}
		if f := sanitizer.Line(str(item)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
