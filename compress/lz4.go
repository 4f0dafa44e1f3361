package compress

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Compressor implements the Codec interface with the lz4 frame format,
// so exported files work with the standard lz4 command-line tool.
type LZ4Compressor struct{}

var _ Codec = LZ4Compressor{}

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into an lz4 frame.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Grow(lz4.CompressBlockBound(len(data)))

	lw := lz4.NewWriter(&buf)
	if _, err := lw.Write(data); err != nil {
		return nil, err
	}
	if err := lw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an lz4 frame.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}
