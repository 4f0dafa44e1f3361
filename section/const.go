package section

// Container geometry shared by every DL variant. The header is eight
// little-endian uint32 words; only the magic and the variant word (the
// "field_08" discriminator) have confirmed meanings, the rest are retained
// verbatim for inspection tools.
const (
	HeaderSize    = 32 // fixed header size in bytes
	MagicOffset   = 0  // byte offset of the magic word
	VariantOffset = 8  // byte offset of the variant word
)

// Record geometry per schema version, reverse-engineered from paired CSV/DL
// corpora. V6 interleaves each logical column across two float positions;
// V3 packs columns contiguously.
const (
	V3FloatsPerRecord = 516
	V3Stride          = V3FloatsPerRecord * 4

	V6FloatsPerRecord  = 1030
	V6ColumnsPerRecord = V6FloatsPerRecord / 2
	V6Stride           = V6FloatsPerRecord * 4
	V6DataStart        = 16456

	// V3 logs place the record body at a tune-dependent offset. The offset is
	// always a multiple of 100 inside this half-open range.
	V3DataStartMin  = 1000
	V3DataStartMax  = 5000
	V3DataStartStep = 100
)
