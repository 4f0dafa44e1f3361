package compress

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Shared stateless-by-use encoder/decoder. EncodeAll/DecodeAll on a shared
// instance are safe for concurrent use and avoid per-call setup cost.
var (
	zstdInitOnce sync.Once
	zstdEncoder  *zstd.Encoder
	zstdDecoder  *zstd.Decoder
)

func zstdInit() {
	zstdInitOnce.Do(func() {
		zstdEncoder, _ = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1),
		)
		zstdDecoder, _ = zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
		)
	})
}

// ZstdCompressor implements the Codec interface with Zstandard.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor creates a new zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Compress compresses data into a zstd frame.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	zstdInit()

	return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decompress decompresses a zstd frame.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	zstdInit()

	return zstdDecoder.DecodeAll(data, nil)
}
