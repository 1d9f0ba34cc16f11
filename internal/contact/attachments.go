package contact

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/thermocore/leadapi/internal/web"
	"github.com/thermocore/leadapi/middlewares"
	"github.com/thermocore/leadapi/pkg/logger"
	"github.com/thermocore/leadapi/pkg/ratelimit"
	"github.com/thermocore/leadapi/pkg/storage"
)

// Upload limits.
const (
	MaxUploadSize = 10 << 20
	UploadPrefix  = "contact-uploads"
	UploadField   = "file"

	uploadRateKeyPrefix = "upload:"
	multipartOverhead   = 1 << 20
	multipartMemory     = 1 << 20
)

// upload stores one attachment and returns the key to put in files.
func (h *Handler) upload(c web.Context) error {
	if h.storage == nil {
		return middlewares.NotFound(c)
	}

	if err := h.checkRate(c, uploadRateKeyPrefix+ratelimit.ClientID(c.Request())); err != nil {
		return err
	}

	r := c.Request()
	if r.ContentLength > MaxUploadSize+multipartOverhead {
		return invalidFile(c, storage.ErrFileTooLarge)
	}
	r.Body = http.MaxBytesReader(c.Response(), r.Body, MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return invalidFile(c, storage.ErrFileTooLarge)
		}
		return invalidFile(c, err)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		return invalidFile(c, err)
	}
	defer file.Close()

	info, err := h.storage.Put(c, file, header.Size,
		storage.WithPrefix(UploadPrefix),
		storage.WithRules(
			storage.MaxSize(MaxUploadSize),
			storage.AllowedTypes(storage.DocumentsAndImages...),
		),
	)
	if err != nil {
		if storage.IsValidation(err) {
			return invalidFile(c, err)
		}
		return web.ErrInternal(translate(c, "errors.upload_failed"),
			web.WithErrorCode(CodeUpload),
			web.WithError(err))
	}

	c.LogInfo("attachment uploaded",
		slog.String("key", info.Key),
		slog.String("content_type", info.ContentType),
		slog.Int64("size", info.Size))

	return c.JSON(http.StatusCreated, map[string]any{
		"success":     true,
		"key":         info.Key,
		"size":        info.Size,
		"contentType": info.ContentType,
	})
}

func invalidFile(c web.Context, err error) error {
	c.LogInfo("attachment rejected", logger.Error(err))
	return web.ErrBadRequest(translate(c, "errors.invalid_file"),
		web.WithErrorCode(CodeInvalidFile),
		web.WithError(err),
		web.WithDetail("reason", fileRejection(err)))
}

// fileRejection maps err to a stable reason clients can branch on.
func fileRejection(err error) string {
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return "too_large"
	case errors.Is(err, storage.ErrEmptyFile):
		return "empty"
	case errors.Is(err, storage.ErrInvalidMIME):
		return "unsupported_type"
	default:
		return "missing"
	}
}
