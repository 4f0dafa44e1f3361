package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/efidecode/dlog/errs"
	"github.com/efidecode/dlog/format"
	"github.com/efidecode/dlog/section"
)

func TestLookup_V3(t *testing.T) {
	layout, err := Lookup(format.VersionV3)
	require.NoError(t, err)
	require.Equal(t, section.V3Stride, layout.Stride)
	require.Zero(t, layout.DataStart, "V3 data start is tune-dependent")
	require.False(t, layout.Partial)
	require.Len(t, layout.Descriptors, 516)

	// Packed geometry: column i at byte offset 4i.
	require.Equal(t, uint32(0), layout.Descriptors[0].ByteOffset)
	require.Equal(t, uint32(4), layout.Descriptors[1].ByteOffset)
	require.Equal(t, uint32(515*4), layout.Descriptors[515].ByteOffset)
}

func TestLookup_V6(t *testing.T) {
	layout, err := Lookup(format.VersionV6)
	require.NoError(t, err)
	require.Equal(t, section.V6Stride, layout.Stride)
	require.Equal(t, section.V6DataStart, layout.DataStart)
	require.False(t, layout.Partial)
	require.Len(t, layout.Descriptors, 515)

	// Interleaved geometry: column i at byte offset 8i, and the last column
	// still fits inside the stride.
	require.Equal(t, uint32(8), layout.Descriptors[1].ByteOffset)
	require.Equal(t, uint32(514*8), layout.Descriptors[514].ByteOffset)
	require.LessOrEqual(t, int(layout.Descriptors[514].ByteOffset)+4, layout.Stride)

	require.Equal(t, "RPM", layout.Descriptors[2].Name)
	require.Equal(t, "rpm", layout.Descriptors[2].Unit)
	require.Equal(t, "Param_514", layout.Descriptors[514].Name)
}

func TestLookup_V4PartialSubset(t *testing.T) {
	layout, err := Lookup(format.VersionV4)
	require.NoError(t, err)
	require.True(t, layout.Partial)
	require.Equal(t, section.V6Stride, layout.Stride)
	require.Len(t, layout.Descriptors, v4VerifiedColumns+6)

	// The bitfield descriptors share the status word.
	var bitfields []Descriptor
	for _, d := range layout.Descriptors {
		if d.Kind == format.KindBitfield {
			bitfields = append(bitfields, d)
		}
	}
	require.Len(t, bitfields, 6)
	for _, d := range bitfields {
		require.Equal(t, uint32(v4StatusWordOffset), d.ByteOffset)
	}
}

func TestLookup_V5Unsupported(t *testing.T) {
	_, err := Lookup(format.VersionV5)
	require.ErrorIs(t, err, errs.ErrUnsupportedSparseFormat)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup(format.VersionUnknown)
	require.ErrorIs(t, err, errs.ErrUnrecognizedFormat)
}

func TestBuiltinLayouts_Validate(t *testing.T) {
	for _, v := range []format.SchemaVersion{format.VersionV3, format.VersionV4, format.VersionV6} {
		layout, err := Lookup(v)
		require.NoError(t, err)
		require.NoError(t, layout.Validate(), "builtin %s table must satisfy the overlap invariants", v)
	}
}

func TestLayout_ValidateRejectsOverlap(t *testing.T) {
	layout := Layout{
		Version: format.VersionV6,
		Stride:  16,
		Descriptors: []Descriptor{
			{ID: 0, Name: "A", ByteOffset: 0, Kind: format.KindF32, Scale: 1},
			{ID: 1, Name: "B", ByteOffset: 2, Kind: format.KindU16, Scale: 1},
		},
	}
	require.ErrorContains(t, layout.Validate(), "overlapping")
}

func TestLayout_ValidateAllowsSharedBitfieldWord(t *testing.T) {
	layout := Layout{
		Version: format.VersionV4,
		Stride:  8,
		Descriptors: []Descriptor{
			{ID: 0, Name: "A", ByteOffset: 0, Kind: format.KindBitfield, Scale: 1, BitOffset: 0, BitWidth: 4},
			{ID: 1, Name: "B", ByteOffset: 0, Kind: format.KindBitfield, Scale: 1, BitOffset: 4, BitWidth: 2},
		},
	}
	require.NoError(t, layout.Validate())

	// Overlapping bit ranges inside the shared word are still rejected.
	layout.Descriptors[1].BitOffset = 3
	require.ErrorContains(t, layout.Validate(), "overlaps bits")
}

func TestLayout_ValidateRejectsStrideOverrun(t *testing.T) {
	layout := Layout{
		Version: format.VersionV3,
		Stride:  4,
		Descriptors: []Descriptor{
			{ID: 0, Name: "A", ByteOffset: 2, Kind: format.KindF32, Scale: 1},
		},
	}
	require.ErrorContains(t, layout.Validate(), "exceeds stride")
}

func TestLayout_ResolveDataStart_Fixed(t *testing.T) {
	layout, err := Lookup(format.VersionV6)
	require.NoError(t, err)

	start, err := layout.ResolveDataStart(section.V6DataStart + 2*section.V6Stride)
	require.NoError(t, err)
	require.Equal(t, section.V6DataStart, start)

	_, err = layout.ResolveDataStart(section.V6DataStart - 1)
	require.ErrorIs(t, err, errs.ErrTruncatedRecordStream)
}

func TestLayout_ResolveDataStart_V3Scan(t *testing.T) {
	layout, err := Lookup(format.VersionV3)
	require.NoError(t, err)

	// 3000 + 2 records; no smaller grid offset leaves a whole record count.
	total := 3000 + 2*section.V3Stride
	start, err := layout.ResolveDataStart(total)
	require.NoError(t, err)
	require.Equal(t, 3000, start)

	// A size admitting no aligned start in the scan range fails loudly.
	_, err = layout.ResolveDataStart(3000 + 2*section.V3Stride + 1)
	require.ErrorIs(t, err, errs.ErrTruncatedRecordStream)
}

func TestColumnNames_GeneratedTail(t *testing.T) {
	require.Equal(t, "Point Number", columnName(0))
	require.Equal(t, "RPM", columnName(2))
	require.Equal(t, "Param_100", columnName(100))
	require.Equal(t, "", columnUnit(100))
}
