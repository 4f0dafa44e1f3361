// Package pool provides pooled byte buffers for the decompression pipeline
// and CSV export, which both produce multi-megabyte transient buffers per
// file and benefit from reuse in batch runs.
package pool

import "sync"

// Default sizes tuned for typical datalogs: DLZ inputs run a few hundred KiB
// and expand 3-10x, so a 1MiB starting capacity avoids most regrows. Buffers
// that ballooned past the threshold are dropped instead of being pooled.
const (
	DecompressBufferDefaultSize  = 1024 * 1024
	DecompressBufferMaxThreshold = 1024 * 1024 * 32
	ExportBufferDefaultSize      = 1024 * 64
	ExportBufferMaxThreshold     = 1024 * 1024 * 8
)

// ByteBuffer wraps a reusable byte slice.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer while keeping its allocation.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of bytes currently in the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data, growing the buffer as needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteByte appends a single byte. The error is always nil; the signature
// satisfies io.ByteWriter.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

type bufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

func newBufferPool(defaultSize, maxThreshold int) *bufferPool {
	return &bufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

func (p *bufferPool) get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

func (p *bufferPool) put(bb *ByteBuffer) {
	if cap(bb.B) > p.maxThreshold {
		return
	}
	p.pool.Put(bb)
}

var (
	decompressPool = newBufferPool(DecompressBufferDefaultSize, DecompressBufferMaxThreshold)
	exportPool     = newBufferPool(ExportBufferDefaultSize, ExportBufferMaxThreshold)
)

// GetDecompressBuffer returns a pooled buffer sized for decompression output.
func GetDecompressBuffer() *ByteBuffer {
	return decompressPool.get()
}

// PutDecompressBuffer returns a decompression buffer to its pool.
func PutDecompressBuffer(bb *ByteBuffer) {
	decompressPool.put(bb)
}

// GetExportBuffer returns a pooled buffer sized for CSV assembly.
func GetExportBuffer() *ByteBuffer {
	return exportPool.get()
}

// PutExportBuffer returns an export buffer to its pool.
func PutExportBuffer(bb *ByteBuffer) {
	exportPool.put(bb)
}
