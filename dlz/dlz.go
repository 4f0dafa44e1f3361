// Package dlz decompresses DLZ datalog containers into DL containers.
//
// The DLZ format stores a byte-swapped, run-length-encoded copy of the DL
// byte stream. Decompression is three stages run back to back:
//
//  1. reverse each 4-byte group of the input (endian transform)
//  2. expand the run-length encoding (0xFF count value triples)
//  3. reverse each 4-byte group of the expanded stream
//
// For the supported corpus the output is byte-identical to the vendor's own
// .DL files; round-trip equality, not merely plausible output, is the
// acceptance criterion for this package.
package dlz

import (
	"fmt"

	"github.com/efidecode/dlog/internal/pool"
)

// Stage names used to tag pipeline errors for diagnostics.
const (
	stagePreSwap  = "pre-swap"
	stageExpand   = "rle-expand"
	stagePostSwap = "post-swap"
)

// Decompress converts a DLZ byte stream into the equivalent DL byte stream.
//
// Each stage's output feeds the next with no intermediate validation beyond
// what the stage itself enforces. A failing stage's error propagates wrapped
// with the stage name.
//
// The returned slice is newly allocated and owned by the caller; the input
// is not modified.
func Decompress(dlzData []byte) ([]byte, error) {
	swapped, err := Swap(dlzData, SwapWidthQuad)
	if err != nil {
		return nil, fmt.Errorf("dlz %s stage: %w", stagePreSwap, err)
	}

	bb := pool.GetDecompressBuffer()
	defer pool.PutDecompressBuffer(bb)

	bb.B, err = expandRLE(bb.B, swapped)
	if err != nil {
		return nil, fmt.Errorf("dlz %s stage: %w", stageExpand, err)
	}

	out, err := Swap(bb.B, SwapWidthQuad)
	if err != nil {
		return nil, fmt.Errorf("dlz %s stage: %w", stagePostSwap, err)
	}

	return out, nil
}
