// Package validator provides rule-based validation that collects every
// failure instead of stopping at the first one.
//
// Rules are plain values built by constructors such as RequiredString or
// MaxLenString. Apply evaluates all of them and returns ValidationErrors
// when at least one rule fails:
//
//	err := validator.Apply(
//	    validator.RequiredString("name", form.Name),
//	    validator.EmailString("email", form.Email),
//	    validator.MaxLenString("message", form.Message, 5000),
//	)
//	if validator.IsValidationError(err) {
//	    ve := validator.ExtractValidationErrors(err)
//	    ve.Translate(tr.TranslateMessage)
//	    return c.JSON(http.StatusBadRequest, ve.Map())
//	}
//
// Each ValidationError carries a translation key and values, so messages
// can be localized after validation with Translate.
package validator
