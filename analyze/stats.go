// Package analyze builds summary reports over decoded datasets: per-column
// statistics for one file, and batch reports over a directory tree of logs.
//
// It sits strictly downstream of the decoding engine and consumes datasets
// by reference; nothing here touches the binary formats.
package analyze

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/efidecode/dlog/dataset"
)

// ColumnStats summarizes one column of a decoded dataset.
type ColumnStats struct {
	Name   string
	Unit   string
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Columns computes summary statistics for the named columns, or for every
// column when no names are given. Unknown names are skipped, which partial
// (V4) datasets rely on.
func Columns(ds *dataset.Dataset, names ...string) []ColumnStats {
	descs := ds.Descriptors()
	if len(names) == 0 {
		names = ds.Columns()
	}

	units := make(map[string]string, len(descs))
	for _, d := range descs {
		units[d.Name] = d.Unit
	}

	out := make([]ColumnStats, 0, len(names))
	for _, name := range names {
		vec, ok := ds.Column(name)
		if !ok {
			continue
		}
		out = append(out, columnStats(name, units[name], vec))
	}

	return out
}

func columnStats(name, unit string, xs []float64) ColumnStats {
	cs := ColumnStats{
		Name: name,
		Unit: unit,
		Min:  math.NaN(),
		Max:  math.NaN(),
		Mean: math.NaN(),
	}
	if len(xs) == 0 {
		cs.StdDev = math.NaN()
		return cs
	}

	cs.Min = xs[0]
	cs.Max = xs[0]
	for _, x := range xs[1:] {
		cs.Min = math.Min(cs.Min, x)
		cs.Max = math.Max(cs.Max, x)
	}
	cs.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		cs.StdDev = stat.StdDev(xs, nil)
	}

	return cs
}
