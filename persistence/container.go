package persistence

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hupe1980/mimgo/codec"
	"github.com/hupe1980/mimgo/dataset"
	"github.com/hupe1980/mimgo/resource"
)

// Options controls how tables are written.
type Options struct {
	// Codec encodes the table document. Defaults to codec.Default.
	Codec codec.Codec
	// Compression defaults to CompressionNone.
	Compression Compression
	// Resources throttles blob IO. May be nil.
	Resources *resource.Controller
}

func (o Options) codec() codec.Codec {
	if o.Codec == nil {
		return codec.Default
	}
	return o.Codec
}

// Encode writes t to w as a container.
func Encode(w io.Writer, t *dataset.Table, opts Options) error {
	c := opts.codec()
	name := c.Name()
	if len(name) > 255 {
		return fmt.Errorf("%w: name %q too long", ErrUnknownCodec, name)
	}

	doc, err := newDocument(t)
	if err != nil {
		return err
	}
	raw, err := c.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode table %q: %w", t.Name(), err)
	}

	payload, used, err := compress(raw, opts.Compression)
	if err != nil {
		return fmt.Errorf("compress table %q: %w", t.Name(), err)
	}

	h := Header{
		Version:          Version,
		Compression:      used,
		CodecNameLen:     uint8(len(name)),
		UncompressedSize: uint64(len(raw)),
		PayloadSize:      uint64(len(payload)),
		Checksum:         CalculateChecksum(payload),
	}

	for _, part := range [][]byte{h.marshal(), []byte(name), payload} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	return nil
}

// Marshal encodes t into a new buffer.
func Marshal(t *dataset.Table, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, t, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one container from r.
func Decode(r io.Reader) (*dataset.Table, error) {
	fixed := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, truncated(err)
	}
	h, err := parseHeader(fixed)
	if err != nil {
		return nil, err
	}

	name := make([]byte, h.CodecNameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, truncated(err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	cr := NewChecksumReader(io.LimitReader(r, int64(h.PayloadSize)))
	payload, err := io.ReadAll(cr)
	if err != nil {
		return nil, err
	}
	if uint64(len(payload)) != h.PayloadSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrTruncated, len(payload), h.PayloadSize)
	}
	if err := cr.Verify(h.Checksum); err != nil {
		return nil, err
	}

	raw, err := decompress(payload, h.Compression, h.UncompressedSize)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := c.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode table: %w", err)
	}
	return doc.table()
}

// Unmarshal decodes a container held in memory.
func Unmarshal(data []byte) (*dataset.Table, error) {
	return Decode(bytes.NewReader(data))
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}
