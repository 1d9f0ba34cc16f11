package contact_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thermocore/leadapi/internal/contact"
)

func valid() contact.Submission {
	return contact.Submission{Name: "Ana", Email: "ana@x.com", Message: "Oi"}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*contact.Submission)
		fields []string
	}{
		{name: "minimal submission", mutate: func(*contact.Submission) {}},
		{name: "missing message", mutate: func(s *contact.Submission) { s.Message = "" }, fields: []string{"message"}},
		{name: "missing message with other errors", mutate: func(s *contact.Submission) {
			s.Message = ""
			s.Email = "nope"
		}, fields: []string{"email", "message"}},
		{name: "invalid email", mutate: func(s *contact.Submission) { s.Email = "not-an-email" }, fields: []string{"email"}},
		{name: "short valid email", mutate: func(s *contact.Submission) { s.Email = "a@b.co" }},
		{name: "everything empty", mutate: func(s *contact.Submission) { *s = contact.Submission{} }, fields: []string{"email", "message", "name"}},
		{name: "name too long", mutate: func(s *contact.Submission) { s.Name = strings.Repeat("a", contact.MaxNameLength+1) }, fields: []string{"name"}},
		{name: "message too long", mutate: func(s *contact.Submission) { s.Message = strings.Repeat("a", contact.MaxMessageLength+1) }, fields: []string{"message"}},
		{name: "optional field too long", mutate: func(s *contact.Submission) { s.Company = strings.Repeat("a", contact.MaxFieldLength+1) }, fields: []string{"company"}},
		{name: "known urgency", mutate: func(s *contact.Submission) { s.Urgency = "critical" }},
		{name: "unknown urgency", mutate: func(s *contact.Submission) { s.Urgency = "yesterday" }, fields: []string{"urgency"}},
		{name: "too many files", mutate: func(s *contact.Submission) { s.Files = make([]string, contact.MaxFiles+1) }, fields: []string{"files"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := valid()
			tt.mutate(&s)

			res := contact.Validate(s)
			assert.Equal(t, len(tt.fields) == 0, res.Valid())
			assert.ElementsMatch(t, tt.fields, keys(res.Fields()))
		})
	}
}

func TestValidate_EmptyEmailReportsOnlyRequired(t *testing.T) {
	t.Parallel()

	s := valid()
	s.Email = ""
	res := contact.Validate(s)

	assert.Equal(t, []string{"is required"}, res.Fields()["email"])
}

func TestValidate_PortugueseUrgencyLabel(t *testing.T) {
	t.Parallel()

	raw := valid().Map()
	raw["urgency"] = "Crítica"

	res := contact.Validate(contact.Sanitize(raw))
	assert.True(t, res.Valid(), res.Fields())
}
