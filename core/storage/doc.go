// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so relation exports
// can target AWS S3 or a self-hosted MinIO instance, and so storage calls can
// be mocked in tests (see core/storage/mocks).
//
// # Operations
//
//   - EnsureBucket: creates the export bucket on first use.
//   - PutObject: uploads an export document.
//   - GetObject: streams an export back.
//   - ListKeys: lists the objects under a prefix.
//   - RemoveObject: prunes old exports.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
