package storage

import (
	"context"
	"io"
	"time"
)

// Storage is the object store used for contact attachments.
type Storage interface {
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Config holds S3 settings.
type Config struct {
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	PathStyle bool   `env:"S3_PATH_STYLE" envDefault:"false"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

func (c Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}

// FileInfo describes a stored object.
type FileInfo struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// MaxURLExpiry is the longest lifetime S3 accepts for a presigned URL.
const MaxURLExpiry = 7 * 24 * time.Hour

type putOptions struct {
	prefix string
	rules  []Rule
}

// Option configures Put.
type Option func(*putOptions)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(o *putOptions) { o.prefix = prefix }
}

// WithRules validates the upload before it is sent.
func WithRules(rules ...Rule) Option {
	return func(o *putOptions) { o.rules = append(o.rules, rules...) }
}
