// Package minio stores table containers in MinIO or another S3-compatible
// service through the MinIO client.
//
// # Basic Usage
//
//	client, err := minioblob.Dial(minioblob.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := minioblob.NewStore(client, "cohorts", "runs/2024-06")
//
// Dial is optional; any *minio.Client works.
package minio
