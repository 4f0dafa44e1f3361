package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// gzipWriterPool pools gzip.Writer instances; each carries sizable internal
// state that benefits from reuse across batch exports.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// GzipCompressor implements the Codec interface with gzip, producing output
// readable by any standard gzip tool.
type GzipCompressor struct{}

var _ Codec = GzipCompressor{}

// NewGzipCompressor creates a new gzip codec.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Compress compresses data into a gzip stream.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(data) / 2)

	gw, _ := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(gw)
	gw.Reset(&buf)

	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses a gzip stream.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return io.ReadAll(gr)
}
