package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/thermocore/leadapi/pkg/sanitizer"
)

// fragments mixes markup, entities and whitespace so generated inputs hit
// the interesting paths.
var fragments = []string{
	"a", "Z", "ção", " ", "  ", "\t", "\n", "\r\n",
	"<b>", "</b>", "<script>", "</script>", "<", ">", "&", "&amp;", "&lt;", "&gt;", "&nbsp;",
	"@", ".", "x@y.com",
}

func genText() gopter.Gen {
	return gen.SliceOf(gen.OneConstOf(toAny(fragments)...)).Map(func(parts []string) string {
		var b strings.Builder
		for _, p := range parts {
			b.WriteString(p)
		}
		return b.String()
	})
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func TestTextProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("Line is idempotent", prop.ForAll(
		func(s string) bool {
			once := sanitizer.Line(s)
			return sanitizer.Line(once) == once
		},
		genText(),
	))

	properties.Property("Paragraphs is idempotent", prop.ForAll(
		func(s string) bool {
			once := sanitizer.Paragraphs(s)
			return sanitizer.Paragraphs(once) == once
		},
		genText(),
	))

	properties.Property("Line output has no leading, trailing or doubled spaces", prop.ForAll(
		func(s string) bool {
			out := sanitizer.Line(s)
			return strings.TrimSpace(out) == out && !strings.Contains(out, "  ")
		},
		genText(),
	))

	properties.Property("Email output is lower case", prop.ForAll(
		func(s string) bool {
			out := sanitizer.Email(s)
			return strings.ToLower(out) == out
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
