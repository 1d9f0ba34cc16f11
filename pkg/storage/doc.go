// Package storage keeps uploaded files in S3-compatible object storage.
//
// Objects are always private. Callers hand out access through presigned GET
// URLs with a bounded lifetime:
//
//	store, err := storage.New(cfg)
//	info, err := store.Put(ctx, file, size,
//		storage.WithPrefix("contact-uploads"),
//		storage.WithRules(storage.MaxSize(10<<20), storage.AllowedTypes(storage.DocumentsAndImages...)),
//	)
//	link, err := store.URL(ctx, info.Key, 7*24*time.Hour)
//
// The content type is sniffed from the first 512 bytes, never taken from the
// client. Keys are generated as {prefix}/{ulid}{ext}.
package storage
