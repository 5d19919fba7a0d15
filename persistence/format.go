package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// Version is the current container format version.
	Version = 1

	// HeaderSize is the size of the fixed header preceding the codec name.
	HeaderSize = 32

	// MaxUncompressedSize bounds the decoded payload of one container.
	MaxUncompressedSize = 1 << 34

	// lz4MaxRatio is the largest expansion an LZ4 block can encode.
	lz4MaxRatio = 255
)

var magic = [4]byte{'M', 'I', 'M', '1'}

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnknownCodec       = errors.New("unknown codec")
	ErrUnknownCompression = errors.New("unknown compression")
	ErrTruncated          = errors.New("truncated container")
	ErrInvalidSize        = errors.New("invalid payload size")
)

// Header is the fixed container header.
type Header struct {
	Version          uint16
	Compression      Compression
	CodecNameLen     uint8
	UncompressedSize uint64
	PayloadSize      uint64
	Checksum         uint32
}

func (h *Header) marshal() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], magic[:])
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	buf[6] = byte(h.Compression)
	buf[7] = h.CodecNameLen
	binary.LittleEndian.PutUint64(buf[8:], h.UncompressedSize)
	binary.LittleEndian.PutUint64(buf[16:], h.PayloadSize)
	binary.LittleEndian.PutUint32(buf[24:], h.Checksum)
	return buf
}

func parseHeader(buf []byte) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, ErrTruncated
	}
	if [4]byte(buf[0:4]) != magic {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, buf[0:4])
	}

	h := &Header{
		Version:          binary.LittleEndian.Uint16(buf[4:]),
		Compression:      Compression(buf[6]),
		CodecNameLen:     buf[7],
		UncompressedSize: binary.LittleEndian.Uint64(buf[8:]),
		PayloadSize:      binary.LittleEndian.Uint64(buf[16:]),
		Checksum:         binary.LittleEndian.Uint32(buf[24:]),
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	if !h.Compression.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, h.Compression)
	}
	if err := h.checkSizes(); err != nil {
		return nil, err
	}
	return h, nil
}

// checkSizes rejects sizes no encoder could have produced. The checksum only
// covers the payload, so the sizes are validated before anything is allocated.
func (h *Header) checkSizes() error {
	u, p := h.UncompressedSize, h.PayloadSize
	switch {
	case u > MaxUncompressedSize || u > math.MaxInt:
		return fmt.Errorf("%w: uncompressed size %d exceeds %d", ErrInvalidSize, u, uint64(MaxUncompressedSize))
	case p > u:
		return fmt.Errorf("%w: payload %d is larger than uncompressed size %d", ErrInvalidSize, p, u)
	case h.Compression == CompressionNone && p != u:
		return fmt.Errorf("%w: uncompressed payload is %d bytes, header says %d", ErrInvalidSize, p, u)
	case h.Compression == CompressionLZ4 && u > p*lz4MaxRatio+16:
		return fmt.Errorf("%w: lz4 cannot expand %d bytes to %d", ErrInvalidSize, p, u)
	}
	return nil
}
