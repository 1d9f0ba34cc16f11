package contact

import (
	"github.com/thermocore/leadapi/pkg/validator"
)

// Field limits, in runes.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MaxMessageLength = 5000
	MaxFieldLength   = 200
)

// Result is the outcome of Validate.
type Result struct {
	Errors validator.ValidationErrors
}

// Valid reports whether no rule failed.
func (r Result) Valid() bool {
	return r.Errors.IsEmpty()
}

// Fields maps each failing field to its messages.
func (r Result) Fields() map[string][]string {
	return r.Errors.Map()
}

// Validate checks every rule and collects all failures.
func Validate(s Submission) Result {
	rules := []validator.Rule{
		validator.RequiredString(FieldName, s.Name),
		validator.MaxLenString(FieldName, s.Name, MaxNameLength),

		validator.RequiredString(FieldEmail, s.Email),
		validator.When(s.Email != "", validator.EmailString(FieldEmail, s.Email)),
		validator.MaxLenString(FieldEmail, s.Email, MaxEmailLength),

		validator.RequiredString(FieldMessage, s.Message),
		validator.MaxLenString(FieldMessage, s.Message, MaxMessageLength),

		validator.When(s.Urgency != "", validator.OneOfString(FieldUrgency, s.Urgency, Urgencies...)),
		validator.MaxLenSlice(FieldFiles, s.Files, MaxFiles),
	}

	optional := map[string]string{
		FieldPhone:    s.Phone,
		FieldCompany:  s.Company,
		FieldPosition: s.Position,
		FieldCity:     s.City,
		FieldService:  s.Service,
	}
	for _, field := range []string{FieldPhone, FieldCompany, FieldPosition, FieldCity, FieldService} {
		rules = append(rules, validator.MaxLenString(field, optional[field], MaxFieldLength))
	}

	return Result{Errors: validator.ExtractValidationErrors(validator.Apply(rules...))}
}
