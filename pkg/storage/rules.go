package storage

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const sniffLen = 512

// DocumentsAndImages are the types accepted for contact attachments.
var DocumentsAndImages = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/zip", // sniffed type of OOXML files
	"text/plain",
	"text/csv",
	"image/*",
}

var extensions = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
	"application/zip": ".zip",
	"text/plain":      ".txt",
	"text/csv":        ".csv",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/bmp":       ".bmp",
	"image/tiff":      ".tiff",
}

// Rule checks an upload's size and sniffed MIME type.
type Rule func(size int64, mime string) error

// MaxSize rejects files larger than n bytes and empty files.
func MaxSize(n int64) Rule {
	return func(size int64, _ string) error {
		switch {
		case size <= 0:
			return ErrEmptyFile
		case size > n:
			return fmt.Errorf("%w: %d > %d bytes", ErrFileTooLarge, size, n)
		}
		return nil
	}
}

// AllowedTypes accepts exact MIME types or "type/*" wildcards.
func AllowedTypes(patterns ...string) Rule {
	return func(_ int64, mime string) error {
		for _, p := range patterns {
			if p == mime {
				return nil
			}
			if base, ok := strings.CutSuffix(p, "/*"); ok && strings.HasPrefix(mime, base+"/") {
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrInvalidMIME, mime)
	}
}

// Sniff detects the MIME type of r and returns a reader that replays the
// consumed bytes.
func Sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head = head[:n]

	mime, _, _ := strings.Cut(http.DetectContentType(head), ";")
	return strings.TrimSpace(mime), io.MultiReader(bytes.NewReader(head), r), nil
}

// Ext returns the file extension for a MIME type, ".bin" when unknown.
func Ext(mime string) string {
	if ext, ok := extensions[mime]; ok {
		return ext
	}
	return ".bin"
}
