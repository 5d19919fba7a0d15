// Package s3 stores table containers in Amazon S3.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	client := awss3.NewFromConfig(cfg)
//	store := s3.NewStore(client, "my-bucket", "runs/2024-06")
//
// Reads are ranged GETs; writes go through the multipart uploader of
// feature/s3/manager. Names are stored under the root prefix.
package s3
