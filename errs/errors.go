// Package errs defines the sentinel errors shared across the dlog packages.
//
// All decode-time failures wrap one of these sentinels with fmt.Errorf("%w"),
// adding call-site context such as byte offsets and observed header values.
// Callers match with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidSwapWidth is returned when a byte-swap transform is requested
	// with a group width other than 2 or 4.
	ErrInvalidSwapWidth = errors.New("invalid byte-swap group width")

	// ErrMalformedBuffer is returned when a buffer's length is not a multiple
	// of the byte-swap group width.
	ErrMalformedBuffer = errors.New("buffer length incompatible with swap width")

	// ErrTruncatedRunLength is returned when a run-length marker byte appears
	// with fewer than two bytes remaining in the input.
	ErrTruncatedRunLength = errors.New("run-length stream ends mid-triple")

	// ErrInvalidHeaderSize is returned when a DL buffer is too small to carry
	// the fixed-size container header.
	ErrInvalidHeaderSize = errors.New("buffer smaller than DL header")

	// ErrUnrecognizedFormat is returned when the header's (magic, variant)
	// pair maps to no known schema version. This is an expected outcome for
	// foreign files, not a corruption signal.
	ErrUnrecognizedFormat = errors.New("unrecognized DL format")

	// ErrUnsupportedSparseFormat is returned for V5 logs. V5 stores records
	// sparsely and must be converted to V6 by the vendor software before this
	// engine can decode it.
	ErrUnsupportedSparseFormat = errors.New("V5 sparse format requires vendor conversion to V6")

	// ErrTruncatedRecordStream is returned when the record body length is not
	// a whole multiple of the schema stride.
	ErrTruncatedRecordStream = errors.New("record body ends mid-record")

	// ErrPartialSchema marks a dataset decoded with a known-incomplete column
	// set (V4). It is warning-grade: decoding succeeds and the dataset carries
	// the partial flag instead of failing.
	ErrPartialSchema = errors.New("schema covers only a verified column subset")

	// ErrNoDescriptors is returned when a schema layout carries no decodable
	// parameter descriptors.
	ErrNoDescriptors = errors.New("schema has no parameter descriptors")
)
