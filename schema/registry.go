package schema

import (
	"fmt"
	"sync"

	"github.com/efidecode/dlog/errs"
	"github.com/efidecode/dlog/format"
	"github.com/efidecode/dlog/section"
)

// v4VerifiedColumns is the number of leading V6-geometry columns confirmed
// correct for V4 logs. Columns past this point decode to garbage on the V4
// corpus, so the V4 layout omits them and flags itself partial.
const v4VerifiedColumns = 64

// v4StatusWordOffset is the byte offset of the packed input/output status
// word inside a V4 record (float position 1028).
const v4StatusWordOffset = 1028 * 4

// buildV3 lays out the packed Terminator X record: 516 contiguous f32
// columns. Values are stored pre-scaled, so every descriptor is identity
// scale.
func buildV3() Layout {
	descs := make([]Descriptor, section.V3FloatsPerRecord)
	for i := range descs {
		descs[i] = Descriptor{
			ID:         uint16(i),
			Name:       columnName(i),
			ByteOffset: uint32(i * 4),
			Kind:       format.KindF32,
			Scale:      1,
			Unit:       columnUnit(i),
		}
	}

	return Layout{
		Version:     format.VersionV3,
		Stride:      section.V3Stride,
		Descriptors: descs,
	}
}

// buildV6 lays out the interleaved HP/Dominator record: each of the 515
// logical columns occupies every second f32 position of the 1030-float
// record, so column i sits at byte offset 8*i.
func buildV6() Layout {
	descs := make([]Descriptor, section.V6ColumnsPerRecord)
	for i := range descs {
		descs[i] = Descriptor{
			ID:         uint16(i),
			Name:       columnName(i),
			ByteOffset: uint32(i * 8),
			Kind:       format.KindF32,
			Scale:      1,
			Unit:       columnUnit(i),
		}
	}

	return Layout{
		Version:     format.VersionV6,
		Stride:      section.V6Stride,
		DataStart:   section.V6DataStart,
		Descriptors: descs,
	}
}

// buildV4 lays out the verified V4 subset: the leading columns share V6's
// interleaved geometry, plus the packed status word whose bitfields carry
// the input/output switch states. Everything else in a V4 record is
// unverified and deliberately absent, which is why the layout is partial.
func buildV4() Layout {
	descs := make([]Descriptor, 0, v4VerifiedColumns+6)
	for i := range v4VerifiedColumns {
		descs = append(descs, Descriptor{
			ID:         uint16(i),
			Name:       columnName(i),
			ByteOffset: uint32(i * 8),
			Kind:       format.KindF32,
			Scale:      1,
			Unit:       columnUnit(i),
		})
	}

	bitfields := []struct {
		name      string
		bitOffset uint8
		bitWidth  uint8
	}{
		{"Launch Input", 0, 1},
		{"Trans Brake Input", 1, 1},
		{"Fan 1 Output", 2, 1},
		{"Fan 2 Output", 3, 1},
		{"Fuel Pump Output", 4, 1},
		{"Current Gear", 5, 4},
	}
	id := uint16(v4VerifiedColumns)
	for _, bf := range bitfields {
		descs = append(descs, Descriptor{
			ID:         id,
			Name:       bf.name,
			ByteOffset: v4StatusWordOffset,
			Kind:       format.KindBitfield,
			Scale:      1,
			BitOffset:  bf.bitOffset,
			BitWidth:   bf.bitWidth,
		})
		id++
	}

	return Layout{
		Version:     format.VersionV4,
		Stride:      section.V6Stride,
		DataStart:   section.V6DataStart,
		Partial:     true,
		Descriptors: descs,
	}
}

// registry builds all layouts exactly once. Each builtin table is validated
// at construction; a failing invariant is a programming error in the table
// itself, so it panics rather than surfacing per call.
var registry = sync.OnceValue(func() map[format.SchemaVersion]Layout {
	layouts := map[format.SchemaVersion]Layout{
		format.VersionV3: buildV3(),
		format.VersionV4: buildV4(),
		format.VersionV6: buildV6(),
	}
	for _, l := range layouts {
		if err := l.Validate(); err != nil {
			panic(fmt.Sprintf("schema: builtin table invalid: %v", err))
		}
	}

	return layouts
})

// Lookup returns the immutable layout for a schema version.
//
// V5 fails with errs.ErrUnsupportedSparseFormat instead of returning a
// misleading partial table: V5 records are not fixed-stride and cannot be
// decoded without vendor reprocessing. Unknown versions fail with
// errs.ErrUnrecognizedFormat.
func Lookup(version format.SchemaVersion) (Layout, error) {
	if version == format.VersionV5 {
		return Layout{}, fmt.Errorf("lookup %s: %w", version, errs.ErrUnsupportedSparseFormat)
	}

	layout, ok := registry()[version]
	if !ok {
		return Layout{}, fmt.Errorf("lookup %s: %w", version, errs.ErrUnrecognizedFormat)
	}

	return layout, nil
}
