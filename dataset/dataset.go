// Package dataset decodes DL record bodies into ordered, column-typed
// datasets and exposes them to downstream consumers.
//
// A Dataset is the engine's only long-lived output: it owns its rows, is
// immutable once assembled, and is handed to consumers by reference. Row
// order always matches the physical record order in the file.
package dataset

import (
	"fmt"
	"iter"

	"github.com/efidecode/dlog/errs"
	"github.com/efidecode/dlog/format"
	"github.com/efidecode/dlog/internal/hash"
	"github.com/efidecode/dlog/schema"
)

// Dataset is an ordered sequence of decoded rows sharing one column schema.
type Dataset struct {
	version     format.SchemaVersion
	descriptors []schema.Descriptor
	colIndex    map[uint64]int // hash.ID(column name) -> column ordinal
	rows        [][]float64
	partial     bool
}

// Row is one decoded record: a fixed-width vector of scaled values plus its
// physical record index.
type Row struct {
	ds    *Dataset
	index int
}

// Assemble pairs decoded rows with the layout's column schema.
//
// It is purely structural: no numeric transformation happens here, all
// scaling was applied during record decoding. Every row must carry exactly
// one value per descriptor.
func Assemble(rows [][]float64, layout schema.Layout) (*Dataset, error) {
	if len(layout.Descriptors) == 0 {
		return nil, fmt.Errorf("assemble: %w", errs.ErrNoDescriptors)
	}
	for i, row := range rows {
		if len(row) != len(layout.Descriptors) {
			return nil, fmt.Errorf("assemble: row %d has %d values, schema has %d columns",
				i, len(row), len(layout.Descriptors))
		}
	}

	colIndex := make(map[uint64]int, len(layout.Descriptors))
	for i, d := range layout.Descriptors {
		colIndex[hash.ID(d.Name)] = i
	}

	return &Dataset{
		version:     layout.Version,
		descriptors: layout.Descriptors,
		colIndex:    colIndex,
		rows:        rows,
		partial:     layout.Partial,
	}, nil
}

// Version returns the schema version the dataset was decoded with.
func (ds *Dataset) Version() format.SchemaVersion {
	return ds.version
}

// NumRows returns the number of decoded records.
func (ds *Dataset) NumRows() int {
	return len(ds.rows)
}

// NumColumns returns the number of columns.
func (ds *Dataset) NumColumns() int {
	return len(ds.descriptors)
}

// Columns returns the column names in declared order.
func (ds *Dataset) Columns() []string {
	names := make([]string, len(ds.descriptors))
	for i, d := range ds.descriptors {
		names[i] = d.Name
	}

	return names
}

// Descriptors returns the column descriptors in declared order. The returned
// slice is the dataset's own reference data and must not be mutated.
func (ds *Dataset) Descriptors() []schema.Descriptor {
	return ds.descriptors
}

// Partial reports whether the dataset was decoded with a known-incomplete
// column set (V4). Missing columns are absent, never silently zero.
func (ds *Dataset) Partial() bool {
	return ds.partial
}

// Warning returns the non-fatal condition attached to the dataset:
// errs.ErrPartialSchema for partial datasets, nil otherwise. Decoding
// succeeded either way; callers decide whether the condition is worth
// reporting.
func (ds *Dataset) Warning() error {
	if ds.partial {
		return fmt.Errorf("%s: %w", ds.version, errs.ErrPartialSchema)
	}

	return nil
}

// At returns the row at the given physical record index.
// Panics if index is out of range, matching slice semantics.
func (ds *Dataset) At(index int) Row {
	if index < 0 || index >= len(ds.rows) {
		panic(fmt.Sprintf("dataset: row index %d out of range [0,%d)", index, len(ds.rows)))
	}

	return Row{ds: ds, index: index}
}

// All returns an iterator over (index, Row) in physical record order.
//
// The sequence is finite and restartable from the beginning: ranging over it
// again replays all rows. It is not seekable mid-stream; use At for random
// access.
func (ds *Dataset) All() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i := range ds.rows {
			if !yield(i, Row{ds: ds, index: i}) {
				return
			}
		}
	}
}

// Column returns the full value vector for the named column, in row order.
// The second return is false when the column does not exist (which downstream
// consumers should expect for partial datasets).
func (ds *Dataset) Column(name string) ([]float64, bool) {
	c, ok := ds.colIndex[hash.ID(name)]
	if !ok {
		return nil, false
	}

	out := make([]float64, len(ds.rows))
	for i, row := range ds.rows {
		out[i] = row[c]
	}

	return out, true
}

// HasColumn reports whether the named column exists in this dataset.
func (ds *Dataset) HasColumn(name string) bool {
	_, ok := ds.colIndex[hash.ID(name)]
	return ok
}

// Index returns the row's physical record index.
func (r Row) Index() int {
	return r.index
}

// Values returns the row's values in column order. The slice is the
// dataset's backing storage; callers must treat it as read-only.
func (r Row) Values() []float64 {
	return r.ds.rows[r.index]
}

// Get returns the row's value for the named column.
func (r Row) Get(name string) (float64, bool) {
	c, ok := r.ds.colIndex[hash.ID(name)]
	if !ok {
		return 0, false
	}

	return r.ds.rows[r.index][c], true
}
