package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// emailPattern accepts local@domain.tld with no whitespace and a dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RequiredString fails when the value is empty or whitespace only.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: newError(field, "is required", "validation.required", nil),
	}
}

// MinLenString fails when the value has fewer than min characters.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: newError(field,
			fmt.Sprintf("must be at least %d characters long", min),
			"validation.min_length", map[string]any{"min": min}),
	}
}

// MaxLenString fails when the value has more than max characters.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: newError(field,
			fmt.Sprintf("must not exceed %d characters", max),
			"validation.max_length", map[string]any{"max": max}),
	}
}

// LenString fails unless the value has exactly length characters.
func LenString(field, value string, length int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) == length },
		Error: newError(field,
			fmt.Sprintf("must be exactly %d characters long", length),
			"validation.exact_length", map[string]any{"length": length}),
	}
}

// EmailString fails unless the value looks like local@domain.tld.
// An empty value fails too; combine with When for optional emails.
func EmailString(field, value string) Rule {
	return Rule{
		Check: func() bool { return emailPattern.MatchString(value) },
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}

// OneOfString fails unless the value is one of allowed.
func OneOfString(field, value string, allowed ...string) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: newError(field,
			"must be one of: "+strings.Join(allowed, ", "),
			"validation.one_of", map[string]any{"values": strings.Join(allowed, ", ")}),
	}
}
