// Package schema holds the per-version parameter tables describing how one
// fixed-size DL record decodes into named values.
//
// The tables are reverse-engineered reference data: they are built once at
// first use, never mutated, and safe for unsynchronized concurrent reads.
// Correcting a parameter means editing one table entry, never decoder code.
package schema

import (
	"fmt"
	"sort"

	"github.com/efidecode/dlog/errs"
	"github.com/efidecode/dlog/format"
	"github.com/efidecode/dlog/section"
)

// Descriptor describes how one parameter is stored inside a record.
type Descriptor struct {
	// ID is the parameter's ordinal within its schema version. Descriptors in
	// a layout are ordered by ID.
	ID uint16
	// Name is the column name, matching the vendor's CSV export naming.
	Name string
	// ByteOffset is the parameter's offset relative to the record start.
	// Bitfield descriptors share one ByteOffset per packed word.
	ByteOffset uint32
	// Kind selects the stored numeric representation.
	Kind format.Kind
	// Scale and Bias map the raw stored value to engineering units:
	// value = raw*Scale + Bias.
	Scale float64
	Bias  float64
	// Unit is the engineering unit of the scaled value, informational only.
	Unit string
	// BitOffset and BitWidth select a bit range inside the shared uint32
	// word. Only meaningful for KindBitfield.
	BitOffset uint8
	BitWidth  uint8
}

// Layout is one schema version's complete decoding recipe: the record stride,
// where the record body starts, and the ordered parameter descriptors.
type Layout struct {
	Version format.SchemaVersion
	// Stride is the byte length of one record.
	Stride int
	// DataStart is the byte offset of the first record. Zero means the offset
	// is tune-dependent and must be resolved per file (V3).
	DataStart int
	// Partial marks layouts covering only a verified column subset (V4).
	Partial bool
	// Descriptors is ordered by ID and immutable after registry construction.
	Descriptors []Descriptor
}

// Columns returns the descriptor names in declared order.
func (l Layout) Columns() []string {
	names := make([]string, len(l.Descriptors))
	for i, d := range l.Descriptors {
		names[i] = d.Name
	}

	return names
}

// ResolveDataStart returns the byte offset of the first record for a file of
// the given total size.
//
// Layouts with a fixed DataStart return it after a bounds check. V3 layouts
// scan the known offset range for the unique grid offset that leaves a whole
// number of records; a file admitting no such offset is reported as a
// truncated record stream.
func (l Layout) ResolveDataStart(totalSize int) (int, error) {
	if l.DataStart > 0 {
		if totalSize < l.DataStart {
			return 0, fmt.Errorf("%s file size %d smaller than data start %d: %w",
				l.Version, totalSize, l.DataStart, errs.ErrTruncatedRecordStream)
		}

		return l.DataStart, nil
	}

	for start := section.V3DataStartMin; start < section.V3DataStartMax; start += section.V3DataStartStep {
		if totalSize >= start && (totalSize-start)%l.Stride == 0 {
			return start, nil
		}
	}

	return 0, fmt.Errorf("%s: no stride-aligned data start in [%d,%d): %w",
		l.Version, section.V3DataStartMin, section.V3DataStartMax, errs.ErrTruncatedRecordStream)
}

// Validate checks the layout's structural invariants: descriptors ordered by
// ID, every byte range inside the stride, and no overlapping ranges except
// bitfields packed into one shared word (whose bit ranges must themselves be
// disjoint).
func (l Layout) Validate() error {
	if len(l.Descriptors) == 0 {
		return fmt.Errorf("%s layout: %w", l.Version, errs.ErrNoDescriptors)
	}

	type span struct {
		start, end uint32
		bitfield   bool
	}

	spans := make([]span, 0, len(l.Descriptors))
	bitsUsed := make(map[uint32]uint32)

	for i, d := range l.Descriptors {
		if i > 0 && d.ID <= l.Descriptors[i-1].ID {
			return fmt.Errorf("%s layout: descriptor %q out of ID order", l.Version, d.Name)
		}

		size := d.Kind.Size()
		if size == 0 {
			return fmt.Errorf("%s layout: descriptor %q has invalid kind", l.Version, d.Name)
		}
		if int(d.ByteOffset)+size > l.Stride {
			return fmt.Errorf("%s layout: descriptor %q exceeds stride %d", l.Version, d.Name, l.Stride)
		}

		if d.Kind == format.KindBitfield {
			if d.BitWidth == 0 || int(d.BitOffset)+int(d.BitWidth) > 32 {
				return fmt.Errorf("%s layout: descriptor %q has invalid bit range", l.Version, d.Name)
			}
			mask := (uint32(1)<<d.BitWidth - 1) << d.BitOffset
			if bitsUsed[d.ByteOffset]&mask != 0 {
				return fmt.Errorf("%s layout: descriptor %q overlaps bits in word at offset %d",
					l.Version, d.Name, d.ByteOffset)
			}
			bitsUsed[d.ByteOffset] |= mask
		}

		spans = append(spans, span{
			start:    d.ByteOffset,
			end:      d.ByteOffset + uint32(size),
			bitfield: d.Kind == format.KindBitfield,
		})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		prev, cur := spans[i-1], spans[i]
		if cur.start >= prev.end {
			continue
		}
		// Bitfields may share the exact same word; anything else is overlap.
		if prev.bitfield && cur.bitfield && prev.start == cur.start {
			continue
		}

		return fmt.Errorf("%s layout: overlapping byte ranges at offset %d", l.Version, cur.start)
	}

	return nil
}
