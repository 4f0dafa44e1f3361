// Package format defines the type enums and header constants shared by the
// dlog packages: the DL schema versions, the numeric kinds a parameter
// descriptor may carry, and the compression types used for exported output.
package format

import "fmt"

type (
	SchemaVersion   uint8
	Kind            uint8
	CompressionType uint8
)

// Magic numbers identifying the two DL format families. Both values appear
// as a little-endian uint32 in the first four bytes of the container.
const (
	MagicV3 uint32 = 0x0095365F // Terminator X family (V3)
	MagicV4 uint32 = 0x0085F41F // HP/Dominator family (V4, V5, V6)
)

const (
	VersionUnknown SchemaVersion = 0
	VersionV3      SchemaVersion = 3 // fully decodable, packed records
	VersionV4      SchemaVersion = 4 // decodable with a verified column subset
	VersionV5      SchemaVersion = 5 // sparse layout, not directly decodable
	VersionV6      SchemaVersion = 6 // fully decodable, interleaved records
)

const (
	KindU8       Kind = 0x1
	KindU16      Kind = 0x2
	KindU32      Kind = 0x3
	KindI16      Kind = 0x4
	KindI32      Kind = 0x5
	KindF32      Kind = 0x6
	KindBitfield Kind = 0x7 // bit range extracted from a shared uint32 word
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone writes output verbatim.
	CompressionGzip CompressionType = 0x2 // CompressionGzip uses klauspost gzip.
	CompressionZstd CompressionType = 0x3 // CompressionZstd uses klauspost zstd.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 uses lz4 block compression.
)

// Classify maps a header's (magic, variant) pair to its schema version.
//
// The mapping is an exact lookup: magic 0x0095365F with variant 2 or 3 is V3,
// magic 0x0085F41F with variant 4, 5 or 6 is V4, V5 or V6. Every other
// combination is VersionUnknown; there is no heuristic fallback.
func Classify(magic uint32, variant uint32) SchemaVersion {
	switch magic {
	case MagicV3:
		if variant == 2 || variant == 3 {
			return VersionV3
		}
	case MagicV4:
		switch variant {
		case 4:
			return VersionV4
		case 5:
			return VersionV5
		case 6:
			return VersionV6
		}
	}

	return VersionUnknown
}

func (v SchemaVersion) String() string {
	switch v {
	case VersionV3:
		return "V3"
	case VersionV4:
		return "V4"
	case VersionV5:
		return "V5"
	case VersionV6:
		return "V6"
	default:
		return "Unknown"
	}
}

// Decodable reports whether records of this version can be decoded directly.
// V5 is recognized but requires vendor reprocessing; Unknown is not a format.
func (v SchemaVersion) Decodable() bool {
	return v == VersionV3 || v == VersionV4 || v == VersionV6
}

// Size returns the number of body bytes one value of this kind occupies.
// Bitfields share a 4-byte word with their siblings.
func (k Kind) Size() int {
	switch k {
	case KindU8:
		return 1
	case KindU16, KindI16:
		return 2
	case KindU32, KindI32, KindF32, KindBitfield:
		return 4
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindF32:
		return "f32"
	case KindBitfield:
		return "bitfield"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a lower-case compression name, as used in CLI flags
// and config files, to its CompressionType.
func ParseCompression(name string) (CompressionType, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "gzip":
		return CompressionGzip, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression type %q", name)
	}
}

// Ext returns the file name suffix appended to exported output for this
// compression type. CompressionNone returns an empty string.
func (c CompressionType) Ext() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}
