package validator

import "fmt"

// Number is any built-in integer or float type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// RequiredNum fails when the value is zero.
func RequiredNum[T Number](field string, value T) Rule {
	return Rule{
		Check: func() bool { return value != 0 },
		Error: newError(field, "is required", "validation.required", nil),
	}
}

// MinNum fails when the value is less than min.
func MinNum[T Number](field string, value, min T) Rule {
	return Rule{
		Check: func() bool { return value >= min },
		Error: newError(field, fmt.Sprintf("must be at least %v", min),
			"validation.min", map[string]any{"min": min}),
	}
}

// MaxNum fails when the value is greater than max.
func MaxNum[T Number](field string, value, max T) Rule {
	return Rule{
		Check: func() bool { return value <= max },
		Error: newError(field, fmt.Sprintf("must not exceed %v", max),
			"validation.max", map[string]any{"max": max}),
	}
}
