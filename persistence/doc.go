// Package persistence stores annotation tables in a self-describing,
// checksummed container.
//
// # Container Layout
//
// All integers are little-endian.
//
//	offset  size  field
//	0       4     magic "MIM1"
//	4       2     format version
//	6       1     compression (0 none, 1 lz4, 2 zstd)
//	7       1     codec name length n
//	8       8     uncompressed payload size
//	16      8     stored payload size
//	24      4     CRC32 (IEEE) of the stored payload
//	28      4     reserved
//	32      n     codec name
//	32+n    ...   payload
//
// The payload is a codec-encoded table document. Float columns and embeddings
// are carried as raw IEEE-754 bytes, so NaN round-trips through JSON codecs.
//
// Save and Load move containers through a blobstore.BlobStore, throttled by an
// optional resource.Controller.
package persistence
