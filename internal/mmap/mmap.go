package mmap

import (
	"errors"
	"io"
	"os"
	"sync"
)

// Advice is an access pattern hint passed to the kernel.
type Advice int

const (
	// AccessDefault applies no special treatment.
	AccessDefault Advice = iota
	// AccessSequential expects reads from front to back.
	AccessSequential
)

// File is a read-only memory-mapped file.
type File struct {
	data []byte
	f    *os.File
	once sync.Once
	err  error
}

// Open maps the file at path into memory.
// Empty files are opened without a mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	size := fi.Size()
	if size < 0 || int64(int(size)) != size {
		_ = f.Close()
		return nil, errors.New("mmap: file size out of range")
	}
	if size == 0 {
		return &File{f: f}, nil
	}

	data, err := mmap(f, int(size))
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &File{data: data, f: f}, nil
}

// Bytes returns the mapped contents. The slice is invalid after Close.
func (m *File) Bytes() []byte { return m.data }

// Len returns the mapped size in bytes.
func (m *File) Len() int { return len(m.data) }

// Advise passes an access hint to the kernel. It is a no-op where unsupported.
func (m *File) Advise(a Advice) error {
	if len(m.data) == 0 {
		return nil
	}
	return madvise(m.data, a)
}

// ReadAt implements io.ReaderAt.
func (m *File) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("mmap: negative offset")
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close unmaps the memory and closes the file. It is idempotent.
func (m *File) Close() error {
	if m == nil {
		return nil
	}
	m.once.Do(func() {
		if m.data != nil {
			m.err = munmap(m.data)
			m.data = nil
		}
		if err := m.f.Close(); err != nil && m.err == nil {
			m.err = err
		}
	})
	return m.err
}
