package dataset

import (
	"fmt"
	"math"

	"github.com/efidecode/dlog/endian"
	"github.com/efidecode/dlog/errs"
	"github.com/efidecode/dlog/format"
	"github.com/efidecode/dlog/schema"
)

// Decode decodes a complete DL byte stream (header included) with the given
// layout: it resolves the record body's start offset, then decodes the body
// in fixed-size strides.
func Decode(data []byte, layout schema.Layout) (*Dataset, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	start, err := layout.ResolveDataStart(len(data))
	if err != nil {
		return nil, err
	}

	return decodeBody(data[start:], layout)
}

// DecodeBody decodes a bare record body (no container header) with the given
// layout. Exposed for callers that carve the body out themselves.
//
// The body length must be a whole multiple of the layout stride; a non-zero
// remainder means the file ends mid-record and fails with
// errs.ErrTruncatedRecordStream rather than silently dropping the tail.
func DecodeBody(body []byte, layout schema.Layout) (*Dataset, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	return decodeBody(body, layout)
}

func decodeBody(body []byte, layout schema.Layout) (*Dataset, error) {
	if rem := len(body) % layout.Stride; rem != 0 {
		return nil, fmt.Errorf("body length %d leaves %d bytes past the last %d-byte record: %w",
			len(body), rem, layout.Stride, errs.ErrTruncatedRecordStream)
	}

	engine := endian.GetLittleEndianEngine()
	numRows := len(body) / layout.Stride

	// Row index i maps to the record at byte offset i*stride; preserving that
	// order is part of the decoding contract, not an implementation detail.
	rows := make([][]float64, numRows)
	for r := range numRows {
		record := body[r*layout.Stride : (r+1)*layout.Stride]
		vals := make([]float64, len(layout.Descriptors))
		for c, d := range layout.Descriptors {
			vals[c] = decodeValue(record, d, engine)
		}
		rows[r] = vals
	}

	return Assemble(rows, layout)
}

// decodeValue reads one descriptor's raw value from a record and applies the
// linear scaling raw*Scale + Bias.
func decodeValue(record []byte, d schema.Descriptor, engine endian.EndianEngine) float64 {
	off := d.ByteOffset

	var raw float64
	switch d.Kind {
	case format.KindU8:
		raw = float64(record[off])
	case format.KindU16:
		raw = float64(engine.Uint16(record[off : off+2]))
	case format.KindU32:
		raw = float64(engine.Uint32(record[off : off+4]))
	case format.KindI16:
		raw = float64(int16(engine.Uint16(record[off : off+2])))
	case format.KindI32:
		raw = float64(int32(engine.Uint32(record[off : off+4])))
	case format.KindF32:
		raw = float64(math.Float32frombits(engine.Uint32(record[off : off+4])))
	case format.KindBitfield:
		word := engine.Uint32(record[off : off+4])
		raw = float64((word >> d.BitOffset) & (uint32(1)<<d.BitWidth - 1))
	}

	return raw*d.Scale + d.Bias
}
