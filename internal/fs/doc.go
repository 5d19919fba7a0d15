// Package fs is the filesystem seam under blobstore.LocalStore writes.
//
//   - [LocalFS]: the os package
//   - [FaultyFS]: wraps a FileSystem and injects write, sync, close and
//     rename failures by file name
//
// Operations take no context; they are short local syscalls.
package fs
