package compress

// NoOpCompressor passes data through unchanged.
type NoOpCompressor struct{}

var _ Codec = NoOpCompressor{}

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input unchanged.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input unchanged.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
