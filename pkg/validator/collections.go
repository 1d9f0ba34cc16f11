package validator

import "fmt"

// RequiredSlice fails when the slice is empty.
func RequiredSlice[T any](field string, value []T) Rule {
	return Rule{
		Check: func() bool { return len(value) > 0 },
		Error: newError(field, "is required", "validation.required", nil),
	}
}

// RequiredMap fails when the map is empty.
func RequiredMap[K comparable, V any](field string, value map[K]V) Rule {
	return Rule{
		Check: func() bool { return len(value) > 0 },
		Error: newError(field, "is required", "validation.required", nil),
	}
}

// MinLenSlice fails when the slice has fewer than min items.
func MinLenSlice[T any](field string, value []T, min int) Rule {
	return Rule{
		Check: func() bool { return len(value) >= min },
		Error: newError(field, fmt.Sprintf("must contain at least %d items", min),
			"validation.min_items", map[string]any{"min": min}),
	}
}

// MaxLenSlice fails when the slice has more than max items.
func MaxLenSlice[T any](field string, value []T, max int) Rule {
	return Rule{
		Check: func() bool { return len(value) <= max },
		Error: newError(field, fmt.Sprintf("must not contain more than %d items", max),
			"validation.max_items", map[string]any{"max": max}),
	}
}
