// Package mmap maps stored table containers read-only into memory.
//
// Unix uses mmap(2) with madvise(2) hints; Windows uses
// CreateFileMapping/MapViewOfFile and ignores hints. A File must not be read
// after Close.
package mmap
