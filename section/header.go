// Package section parses the fixed-size header at the start of a DL
// container and classifies the container's schema version.
package section

import (
	"fmt"

	"github.com/efidecode/dlog/endian"
	"github.com/efidecode/dlog/errs"
	"github.com/efidecode/dlog/format"
)

// Header represents the fixed-size header section at the start of a DL
// container. All words are little-endian on disk.
type Header struct {
	// Magic is the format family identifier. byte offset 0-3
	Magic uint32
	// Variant disambiguates the schema version within a magic family.
	// byte offset 8-11
	Variant uint32
	// Words holds all eight header words, including the unidentified ones,
	// exactly as read. Inspection tools dump them; the decoder ignores them.
	Words [8]uint32
}

// Parse parses the header from the start of a DL byte stream.
//
// Parameters:
//   - data: DL byte stream (must be at least HeaderSize bytes)
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize if data is shorter than the header
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("need %d bytes, have %d: %w", HeaderSize, len(data), errs.ErrInvalidHeaderSize)
	}

	engine := endian.GetLittleEndianEngine()
	for i := range h.Words {
		h.Words[i] = engine.Uint32(data[i*4 : i*4+4])
	}
	h.Magic = h.Words[MagicOffset/4]
	h.Variant = h.Words[VariantOffset/4]

	return nil
}

// Bytes serializes the header into a HeaderSize byte slice. The magic and
// variant fields take precedence over the corresponding Words entries, so a
// zero-valued Header with only Magic and Variant set round-trips correctly.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := endian.GetLittleEndianEngine()
	words := h.Words
	words[MagicOffset/4] = h.Magic
	words[VariantOffset/4] = h.Variant
	for i, w := range words {
		engine.PutUint32(b[i*4:i*4+4], w)
	}

	return b
}

// Version classifies the header into a schema version via the exact
// (magic, variant) mapping. Unrecognized combinations yield VersionUnknown.
func (h *Header) Version() format.SchemaVersion {
	return format.Classify(h.Magic, h.Variant)
}

// ParseHeader parses a Header from the start of a DL byte stream.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}

// Detect classifies a DL byte stream by its header.
//
// An unknown (magic, variant) combination returns errs.ErrUnrecognizedFormat
// carrying both observed values; callers treat this as a normal outcome for
// foreign files, not a crash.
func Detect(data []byte) (format.SchemaVersion, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return format.VersionUnknown, err
	}

	version := h.Version()
	if version == format.VersionUnknown {
		return format.VersionUnknown, fmt.Errorf("magic 0x%08X variant %d: %w",
			h.Magic, h.Variant, errs.ErrUnrecognizedFormat)
	}

	return version, nil
}
