package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_V3Family(t *testing.T) {
	require.Equal(t, VersionV3, Classify(MagicV3, 2))
	require.Equal(t, VersionV3, Classify(MagicV3, 3))
}

func TestClassify_V4Family(t *testing.T) {
	require.Equal(t, VersionV4, Classify(MagicV4, 4))
	require.Equal(t, VersionV5, Classify(MagicV4, 5))
	require.Equal(t, VersionV6, Classify(MagicV4, 6))
}

func TestClassify_UnknownCombinations(t *testing.T) {
	// Known magic with a variant outside its set.
	require.Equal(t, VersionUnknown, Classify(MagicV3, 4))
	require.Equal(t, VersionUnknown, Classify(MagicV3, 6))
	require.Equal(t, VersionUnknown, Classify(MagicV4, 2))
	require.Equal(t, VersionUnknown, Classify(MagicV4, 3))
	require.Equal(t, VersionUnknown, Classify(MagicV4, 7))

	// Unknown magic, even with a plausible variant.
	require.Equal(t, VersionUnknown, Classify(0xDEADBEEF, 6))
	require.Equal(t, VersionUnknown, Classify(0, 0))
}

func TestSchemaVersion_Decodable(t *testing.T) {
	require.True(t, VersionV3.Decodable())
	require.True(t, VersionV4.Decodable())
	require.True(t, VersionV6.Decodable())
	require.False(t, VersionV5.Decodable())
	require.False(t, VersionUnknown.Decodable())
}

func TestSchemaVersion_String(t *testing.T) {
	require.Equal(t, "V3", VersionV3.String())
	require.Equal(t, "V5", VersionV5.String())
	require.Equal(t, "Unknown", VersionUnknown.String())
}

func TestKind_Size(t *testing.T) {
	require.Equal(t, 1, KindU8.Size())
	require.Equal(t, 2, KindU16.Size())
	require.Equal(t, 2, KindI16.Size())
	require.Equal(t, 4, KindU32.Size())
	require.Equal(t, 4, KindI32.Size())
	require.Equal(t, 4, KindF32.Size())
	require.Equal(t, 4, KindBitfield.Size())
	require.Equal(t, 0, Kind(0xFF).Size())
}

func TestCompressionType_Ext(t *testing.T) {
	require.Equal(t, "", CompressionNone.Ext())
	require.Equal(t, ".gz", CompressionGzip.Ext())
	require.Equal(t, ".zst", CompressionZstd.Ext())
	require.Equal(t, ".lz4", CompressionLZ4.Ext())
}

func TestParseCompression(t *testing.T) {
	for name, want := range map[string]CompressionType{
		"":     CompressionNone,
		"none": CompressionNone,
		"gzip": CompressionGzip,
		"zstd": CompressionZstd,
		"lz4":  CompressionLZ4,
	} {
		got, err := ParseCompression(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseCompression("brotli")
	require.Error(t, err)
}
