package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/thermocore/leadapi/pkg/id"
)

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3 implements Storage on an S3-compatible bucket.
type S3 struct {
	client    objectAPI
	presigner presignAPI
	bucket    string
}

// New creates an S3 store.
func New(cfg Config) (*S3, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := s3.New(s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		}
	})

	return &S3{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
	}, nil
}

// Put validates and uploads r. The key is generated.
func (s *S3) Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	o := &putOptions{}
	for _, opt := range opts {
		opt(o)
	}

	mime, body, err := Sniff(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrUploadFailed, err)
	}
	for _, rule := range o.rules {
		if err := rule(size, mime); err != nil {
			return nil, err
		}
	}

	// PutObject needs a seekable body to compute the payload hash.
	data, err := io.ReadAll(io.LimitReader(body, size+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrUploadFailed, err)
	}
	if int64(len(data)) != size {
		return nil, fmt.Errorf("%w: size mismatch", ErrUploadFailed)
	}

	key := buildKey(o.prefix, mime)
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(mime),
		ACL:           types.ObjectCannedACLPrivate,
	}); err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &FileInfo{Key: key, ContentType: mime, Size: size}, nil
}

// URL presigns a GET for key. Expiry is capped at MaxURLExpiry.
func (s *S3) URL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 || expiry > MaxURLExpiry {
		expiry = MaxURLExpiry
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(po *s3.PresignOptions) {
		po.Expires = expiry
	})
	if err != nil {
		return "", wrapS3Error(err, ErrPresignFailed)
	}
	return req.URL, nil
}

// Healthcheck verifies the bucket is reachable.
func (s *S3) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
		if err != nil {
			return wrapS3Error(err, ErrNotFound)
		}
		return nil
	}
}

func buildKey(prefix, mime string) string {
	name := id.New() + Ext(mime)
	prefix = strings.Trim(path.Clean("/"+prefix), "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

var _ Storage = (*S3)(nil)
