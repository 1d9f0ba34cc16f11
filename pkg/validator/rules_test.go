package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermocore/leadapi/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when every rule passes", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("name", "Ana"),
			validator.EmailString("email", "ana@x.com"),
		)
		require.NoError(t, err)
	})

	t.Run("collects every failure without short-circuit", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("name", ""),
			validator.RequiredString("email", ""),
			validator.EmailString("email", ""),
			validator.RequiredString("message", "   "),
		)
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 4)
		assert.Len(t, ve.Get("email"), 2)
		assert.True(t, ve.Has("name"))
		assert.True(t, ve.Has("message"))
		assert.False(t, ve.Has("phone"))
	})

	t.Run("no rules is valid", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validator.Apply())
	})

	t.Run("wrapped errors are still detected", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("contact: %w", validator.Apply(validator.RequiredString("name", "")))
		assert.True(t, validator.IsValidationError(err))
		assert.Len(t, validator.ExtractValidationErrors(err), 1)
	})

	t.Run("other errors are not validation errors", func(t *testing.T) {
		t.Parallel()
		err := errors.New("boom")
		assert.False(t, validator.IsValidationError(err))
		assert.Nil(t, validator.ExtractValidationErrors(err))
	})
}

func TestEmailString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		valid bool
	}{
		{"a@b.co", true},
		{"ana@x.com", true},
		{"first.last+tag@mail.example.com.br", true},
		{"not-an-email", false},
		{"", false},
		{"a@b", false},
		{"@b.co", false},
		{"a b@c.de", false},
		{"a@@b.co", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.EmailString("email", tt.value))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve := validator.ExtractValidationErrors(err)
			assert.Equal(t, "validation.email", ve[0].TranslationKey)
		})
	}
}

func TestStringLengthRules(t *testing.T) {
	t.Parallel()

	t.Run("counts runes not bytes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validator.Apply(validator.MaxLenString("city", "São Paulo", 9)))
		require.NoError(t, validator.Apply(validator.LenString("uf", "SÃ", 2)))
	})

	t.Run("max length boundary", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validator.Apply(validator.MaxLenString("name", "abc", 3)))
		require.Error(t, validator.Apply(validator.MaxLenString("name", "abcd", 3)))
	})
}

func TestOneOfString(t *testing.T) {
	t.Parallel()

	require.NoError(t, validator.Apply(validator.OneOfString("urgency", "high", "low", "normal", "high")))

	err := validator.Apply(validator.OneOfString("urgency", "asap", "low", "normal", "high"))
	require.Error(t, err)
	ve := validator.ExtractValidationErrors(err)
	assert.Equal(t, "validation.one_of", ve[0].TranslationKey)
	assert.Equal(t, "low, normal, high", ve[0].TranslationValues["values"])
}

func TestWhen(t *testing.T) {
	t.Parallel()

	require.NoError(t, validator.Apply(validator.When(false, validator.EmailString("email", "bad"))))
	require.Error(t, validator.Apply(validator.When(true, validator.EmailString("email", "bad"))))
}

func TestValidationErrors_Map(t *testing.T) {
	t.Parallel()

	err := validator.Apply(
		validator.RequiredString("name", ""),
		validator.RequiredString("email", ""),
		validator.EmailString("email", ""),
	)
	m := validator.ExtractValidationErrors(err).Map()

	assert.Equal(t, []string{"is required"}, m["name"])
	assert.Equal(t, []string{"is required", "must be a valid email address"}, m["email"])
}

func TestCollectionRules(t *testing.T) {
	t.Parallel()

	files := []string{"a", "b", "c"}
	require.NoError(t, validator.Apply(validator.MaxLenSlice("files", files, 3)))
	require.Error(t, validator.Apply(validator.MaxLenSlice("files", files, 2)))
	require.Error(t, validator.Apply(validator.MinLenSlice("files", files, 4)))
	require.Error(t, validator.Apply(validator.RequiredSlice("files", []string{})))
	require.Error(t, validator.Apply(validator.RequiredMap("meta", map[string]string{})))
	require.NoError(t, validator.Apply(validator.MaxNum("score", 100, 100)))
	require.Error(t, validator.Apply(validator.MinNum("score", 1.5, 2.0)))
}

func TestTranslationKeyStandards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rule           validator.Rule
		expectedKey    string
		expectedValues map[string]any
	}{
		{validator.RequiredString("email", ""), "validation.required", map[string]any{"field": "email"}},
		{validator.MinLenString("message", "oi", 8), "validation.min_length", map[string]any{"field": "message", "min": 8}},
		{validator.MaxLenString("name", "verylongname", 10), "validation.max_length", map[string]any{"field": "name", "max": 10}},
		{validator.LenString("code", "1234", 6), "validation.exact_length", map[string]any{"field": "code", "length": 6}},
		{validator.EmailString("email", "x"), "validation.email", map[string]any{"field": "email"}},
		{validator.MinNum("age", 15, 18), "validation.min", map[string]any{"field": "age", "min": 18}},
		{validator.MaxNum("score", 105, 100), "validation.max", map[string]any{"field": "score", "max": 100}},
		{validator.MaxLenSlice("files", []string{"a"}, 0), "validation.max_items", map[string]any{"field": "files", "max": 0}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expectedKey, tt.rule.Error.TranslationKey)
		assert.Equal(t, tt.expectedValues, tt.rule.Error.TranslationValues)
	}
}
