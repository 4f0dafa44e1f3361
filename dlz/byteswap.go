package dlz

import (
	"fmt"

	"github.com/efidecode/dlog/errs"
)

// Swap group widths supported by the transform. The DLZ container uses
// quad-group reversal; the pair width exists for 16-bit oriented payloads.
const (
	SwapWidthPair = 2
	SwapWidthQuad = 4
)

// Swap returns a new buffer of identical length with every width-sized group
// of adjacent bytes reversed: for width 4, [A,B,C,D] becomes [D,C,B,A].
//
// The transform is its own inverse: Swap(Swap(b)) == b bit-for-bit. That
// involution is a correctness requirement of the decompression pipeline, not
// an optimization, because the same transform runs before and after the
// run-length stage.
//
// Returns errs.ErrInvalidSwapWidth for widths other than 2 or 4, and
// errs.ErrMalformedBuffer when the buffer length is not a multiple of the
// width.
func Swap(data []byte, width int) ([]byte, error) {
	if width != SwapWidthPair && width != SwapWidthQuad {
		return nil, fmt.Errorf("swap width %d: %w", width, errs.ErrInvalidSwapWidth)
	}
	if len(data)%width != 0 {
		return nil, fmt.Errorf("buffer length %d is not a multiple of swap width %d: %w",
			len(data), width, errs.ErrMalformedBuffer)
	}

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += width {
		for j := range width {
			out[i+j] = data[i+width-1-j]
		}
	}

	return out, nil
}
