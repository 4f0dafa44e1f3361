// Command dlparse decodes a Holley .dl or .dlz datalog and exports it as
// CSV, matching the column layout of the vendor software's CSV export.
//
// Usage:
//
//	dlparse [-out file.csv] [-compress none|gzip|zstd|lz4] [-precision n] file.dl
//
// Without -out the CSV goes to stdout; -compress requires -out.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/efidecode/dlog"
	"github.com/efidecode/dlog/dataset"
	"github.com/efidecode/dlog/format"
)

func main() {
	out := flag.String("out", "", "output CSV path (default: stdout)")
	compressName := flag.String("compress", "none", "output compression: none, gzip, zstd or lz4")
	precision := flag.Int("precision", -1, "decimal places for values (-1 for shortest exact form)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dlparse [-out file.csv] [-compress type] [-precision n] file.dl")
		os.Exit(1)
	}
	in := flag.Arg(0)

	compression, err := format.ParseCompression(*compressName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dlparse: %v\n", err)
		os.Exit(1)
	}
	if compression != format.CompressionNone && *out == "" {
		fmt.Fprintln(os.Stderr, "dlparse: -compress requires -out")
		os.Exit(1)
	}

	ds, err := dlog.DecodeFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dlparse: %v\n", err)
		os.Exit(1)
	}
	if warn := ds.Warning(); warn != nil {
		fmt.Fprintf(os.Stderr, "dlparse: %s: %v, exporting %d verified columns\n",
			in, warn, ds.NumColumns())
	}

	opts := []dataset.CSVOption{
		dataset.WithCompression(compression),
		dataset.WithPrecision(*precision),
	}

	if *out == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := ds.WriteCSV(w, opts...); err != nil {
			fmt.Fprintf(os.Stderr, "dlparse: %v\n", err)
			os.Exit(1)
		}
		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "dlparse: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := ds.ExportCSV(*out, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "dlparse: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%s: %s, %d rows, %d columns -> %s%s\n",
		in, ds.Version(), ds.NumRows(), ds.NumColumns(), *out, compression.Ext())
}
