package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte{1, 2, 3})
	require.NoError(t, bb.WriteByte(4))
	require.Equal(t, []byte{1, 2, 3, 4}, bb.Bytes())
	require.Equal(t, 4, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, cap(bb.B), 16, "reset should keep the allocation")
}

func TestDecompressPool_Reuse(t *testing.T) {
	bb := GetDecompressBuffer()
	bb.MustWrite([]byte("payload"))
	PutDecompressBuffer(bb)

	got := GetDecompressBuffer()
	require.Equal(t, 0, got.Len(), "pooled buffer must come back empty")
	PutDecompressBuffer(got)
}

func TestExportPool_DropsOversizedBuffers(t *testing.T) {
	bb := &ByteBuffer{B: make([]byte, 0, ExportBufferMaxThreshold+1)}
	// Must not panic; the oversized buffer is simply not pooled.
	PutExportBuffer(bb)

	got := GetExportBuffer()
	require.LessOrEqual(t, cap(got.B), ExportBufferMaxThreshold)
	PutExportBuffer(got)
}
