package dlz

import (
	"fmt"

	"github.com/efidecode/dlog/errs"
)

// Marker introduces a run-length triple (Marker, count, value) in the
// encoded stream. A count of zero is the escape form: it emits one literal
// 0xFF byte. The encoder is responsible for escaping every literal 0xFF this
// way; an unescaped 0xFF in the input is indistinguishable from a marker and
// decodes to well-defined but wrong output.
const Marker = 0xFF

// ExpandRLE decodes a run-length-encoded byte sequence in a single
// left-to-right pass. Literal bytes are copied verbatim; a marker followed by
// (count, value) emits value repeated count times; a marker followed by
// (0, value) emits a literal 0xFF.
//
// Returns errs.ErrTruncatedRunLength when a marker appears with fewer than
// two bytes remaining.
func ExpandRLE(data []byte) ([]byte, error) {
	out, err := expandRLE(nil, data)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// expandRLE appends the decoded bytes to dst and returns the extended slice,
// so the pipeline can reuse pooled buffers across files.
func expandRLE(dst []byte, data []byte) ([]byte, error) {
	for i := 0; i < len(data); {
		b := data[i]
		i++

		if b != Marker {
			dst = append(dst, b)
			continue
		}

		if i+2 > len(data) {
			return dst, fmt.Errorf("marker at offset %d with %d trailing bytes: %w",
				i-1, len(data)-i, errs.ErrTruncatedRunLength)
		}

		count := data[i]
		value := data[i+1]
		i += 2

		if count == 0 {
			// Escape form for a literal marker byte.
			dst = append(dst, Marker)
			continue
		}

		for range int(count) {
			dst = append(dst, value)
		}
	}

	return dst, nil
}
