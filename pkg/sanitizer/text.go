package sanitizer

import (
	"html"
	"strings"
)

// maxUnwrapPasses bounds PlainText on inputs with deeply nested entities.
const maxUnwrapPasses = 16

// PlainText strips all markup and decodes entities, repeating until the
// output no longer changes so that PlainText(PlainText(s)) == PlainText(s).
func PlainText(s string) string {
	return settle(s, unwrap)
}

func unwrap(s string) string {
	return html.UnescapeString(StripHTML(s))
}

// markup holds the characters that can start a tag or an entity.
var markup = strings.NewReplacer("&", "", "<", "")

// settle applies fn until its output is stable. Input still changing after
// maxUnwrapPasses loses its markup characters, which leaves nothing for fn
// to decode, so the result is a fixed point of fn either way.
func settle(s string, fn func(string) string) string {
	for range maxUnwrapPasses {
		next := fn(s)
		if next == s {
			return s
		}
		s = next
	}
	return fn(markup.Replace(s))
}

// CollapseSpace trims the string and replaces every run of whitespace,
// newlines included, with a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CollapseLines collapses whitespace inside each line, drops leading and
// trailing blank lines and reduces runs of blank lines to one.
func CollapseLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = CollapseSpace(line)
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Line returns s as a single clean line of plain text.
func Line(s string) string {
	return CollapseSpace(PlainText(s))
}

// Paragraphs returns s as plain text that keeps its line structure.
func Paragraphs(s string) string {
	return CollapseLines(PlainText(s))
}

// Email returns a trimmed, lower-cased single-line address. Case folding
// happens before decoding too, so an upper-case name like &NBSP; never turns
// into an entity on a later pass.
func Email(s string) string {
	return settle(strings.ToLower(s), func(s string) string {
		return strings.ToLower(Line(s))
	})
}
