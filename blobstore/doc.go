// Package blobstore abstracts where stored tables live.
//
// BlobStore implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, mmap reads and atomic writes
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// Blobs are read with ReadAt; NewReader adapts a Blob to a sequential
// io.Reader for decoders.
package blobstore
