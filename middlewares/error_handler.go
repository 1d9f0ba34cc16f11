package middlewares

import (
	"errors"
	"net/http"

	"github.com/thermocore/leadapi/internal/web"
	"github.com/thermocore/leadapi/pkg/logger"
	"github.com/thermocore/leadapi/pkg/validator"
)

// Error codes shared by every endpoint.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	CodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	CodeTimeout          = "REQUEST_TIMEOUT"
	CodeInternal         = "INTERNAL_ERROR"
)

// Translation keys of the generic error messages.
const (
	msgInternal         = "errors.internal"
	msgTimeout          = "errors.timeout"
	msgNotFound         = "errors.not_found"
	msgMethodNotAllowed = "errors.method_not_allowed"
	msgTooLarge         = "errors.too_large"
	msgValidation       = "errors.validation"
)

var fallbackMessages = map[string]string{
	msgInternal:         "Internal server error. Please try again later.",
	msgTimeout:          "The request took too long. Please try again.",
	msgNotFound:         "Resource not found.",
	msgMethodNotAllowed: "Method not allowed.",
	msgTooLarge:         "Request body too large.",
	msgValidation:       "Some fields are invalid.",
}

// Message translates key in the request language, falling back to the
// built-in English text when no translation exists.
func Message(c web.Context, key string) string {
	if msg := c.T(key); msg != key {
		return msg
	}
	if msg, ok := fallbackMessages[key]; ok {
		return msg
	}
	return key
}

// JSONErrorHandler renders every error as
// {"success":false,"error":...,"code":...} plus HTTPError details. Causes
// of 5xx responses are logged; they never reach the body.
func JSONErrorHandler() web.ErrorHandler {
	return func(c web.Context, err error) error {
		he := toHTTPError(c, err)

		body := make(map[string]any, len(he.Details)+3)
		for k, v := range he.Details {
			body[k] = v
		}
		body["success"] = false
		body["error"] = he.Message
		body["code"] = he.ErrorCode

		if he.Code >= http.StatusInternalServerError {
			cause := err
			if he.Err != nil {
				cause = he.Err
			}
			attrs := []any{"status", he.Code, "code", he.ErrorCode, logger.Error(cause)}
			if pe, ok := AsPanicError(err); ok && len(pe.Stack) > 0 {
				attrs = append(attrs, "stack", string(pe.Stack))
			}
			c.LogError("request failed", attrs...)
		}

		return c.JSON(he.Code, body)
	}
}

func toHTTPError(c web.Context, err error) *web.HTTPError {
	if he, ok := web.AsHTTPError(err); ok {
		if he.ErrorCode == "" {
			he.ErrorCode = codeForStatus(he.Code)
		}
		return he
	}
	if _, ok := AsPanicError(err); ok {
		return web.ErrInternal(Message(c, msgInternal), web.WithErrorCode(CodeInternal), web.WithError(err))
	}
	if te, ok := AsTimeoutError(err); ok {
		return web.ErrServiceUnavailable(Message(c, msgTimeout), web.WithErrorCode(CodeTimeout), web.WithError(te))
	}
	if errors.Is(err, web.ErrBodyTooLarge) {
		return web.ErrRequestTooLarge(Message(c, msgTooLarge), web.WithErrorCode(CodeRequestTooLarge))
	}
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return ValidationHTTPError(c, ve)
	}
	return web.ErrInternal(Message(c, msgInternal), web.WithErrorCode(CodeInternal), web.WithError(err))
}

// ValidationHTTPError translates ve and wraps it in a 400 VALIDATION_ERROR
// carrying the field map under "errors".
func ValidationHTTPError(c web.Context, ve validator.ValidationErrors) *web.HTTPError {
	if tr := web.TranslatorFrom(c); tr != nil {
		ve.Translate(tr.TranslateMessage)
	}
	return web.ErrBadRequest(Message(c, msgValidation),
		web.WithErrorCode(CodeValidation),
		web.WithError(ve),
		web.WithDetail("errors", ve.Map()),
	)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidRequest
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case http.StatusRequestEntityTooLarge:
		return CodeRequestTooLarge
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return CodeTimeout
	default:
		return CodeInternal
	}
}

// NotFound answers unknown routes with 404 NOT_FOUND.
func NotFound(c web.Context) error {
	return web.ErrNotFound(Message(c, msgNotFound), web.WithErrorCode(CodeNotFound))
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(c web.Context) error {
	return web.ErrMethodNotAllowed(Message(c, msgMethodNotAllowed), web.WithErrorCode(CodeMethodNotAllowed))
}
