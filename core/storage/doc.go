// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface. The catalog uses it to archive every
// raw identify dump that produced accepted submissions, so a contributor's original paste can be
// retrieved later for audit. It supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: used by EnsureBucket before the first archive write.
//   - PutObject: uploads an archived dump.
//   - GetObject: retrieves an archived dump.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage) // nil when storage.enabled=false
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
