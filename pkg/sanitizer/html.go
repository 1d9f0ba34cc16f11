package sanitizer

import "github.com/microcosm-cc/bluemonday"

// strict drops every element; script and style contents go with them.
var strict = bluemonday.StrictPolicy()

// StripHTML removes every tag and returns HTML-escaped text.
// Use PlainText when the result is not going to be embedded in HTML.
func StripHTML(s string) string {
	return strict.Sanitize(s)
}
