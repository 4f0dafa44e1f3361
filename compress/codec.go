// Package compress provides the block codecs used when exporting decoded
// datasets (e.g. gzip-compressed CSV). It has nothing to do with the DLZ
// container: DLZ decompression is the dlz package's run-length pipeline.
package compress

import (
	"fmt"

	"github.com/efidecode/dlog/format"
)

// Compressor compresses a complete in-memory block.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same type.
type Decompressor interface {
	// Decompress decompresses data and returns a newly allocated result.
	// Returns an error for corrupted input or a mismatched algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a new Codec for the given compression type. target
// names the usage in error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionGzip: NewGzipCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a shared built-in Codec for the compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
