// Command dlinfo inspects a Holley .dl or .dlz datalog without decoding it:
// it prints the header words, the detected schema version and the record
// geometry the decoder would use.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/efidecode/dlog"
	"github.com/efidecode/dlog/errs"
	"github.com/efidecode/dlog/format"
	"github.com/efidecode/dlog/schema"
	"github.com/efidecode/dlog/section"
)

func main() {
	dumpHex := flag.Bool("hex", false, "hex-dump the 32-byte header")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dlinfo [-hex] file.dl")
		os.Exit(1)
	}
	if err := info(flag.Arg(0), *dumpHex); err != nil {
		fmt.Fprintf(os.Stderr, "dlinfo: %v\n", err)
		os.Exit(1)
	}
}

func info(path string, dumpHex bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	compressed := strings.EqualFold(filepath.Ext(path), ".dlz")
	if compressed {
		if data, err = dlog.Decompress(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	h, err := section.ParseHeader(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "file\t%s\n", path)
	if compressed {
		fmt.Fprintf(w, "decompressed\t%d bytes\n", len(data))
	} else {
		fmt.Fprintf(w, "size\t%d bytes\n", len(data))
	}
	fmt.Fprintf(w, "magic\t0x%08X\n", h.Magic)
	fmt.Fprintf(w, "variant\t%d\n", h.Variant)
	for i, word := range h.Words {
		fmt.Fprintf(w, "word[%d]\t0x%08X\n", i, word)
	}

	version := h.Version()
	fmt.Fprintf(w, "version\t%s\n", version)

	printGeometry(w, version, len(data))
	w.Flush()

	if dumpHex {
		fmt.Println()
		fmt.Print(hex.Dump(data[:section.HeaderSize]))
	}

	return nil
}

func printGeometry(w *tabwriter.Writer, version format.SchemaVersion, totalSize int) {
	if version == format.VersionUnknown {
		fmt.Fprintf(w, "decodable\tno (unrecognized format)\n")
		return
	}

	layout, err := schema.Lookup(version)
	if err != nil {
		if errors.Is(err, errs.ErrUnsupportedSparseFormat) {
			fmt.Fprintf(w, "decodable\tno (sparse record format)\n")
			return
		}
		fmt.Fprintf(w, "decodable\tno (%v)\n", err)
		return
	}

	fmt.Fprintf(w, "decodable\tyes\n")
	fmt.Fprintf(w, "stride\t%d bytes\n", layout.Stride)
	fmt.Fprintf(w, "columns\t%d\n", len(layout.Descriptors))
	if layout.Partial {
		fmt.Fprintf(w, "schema\tpartial\n")
	}

	start, err := layout.ResolveDataStart(totalSize)
	if err != nil {
		fmt.Fprintf(w, "records\tunresolved (%v)\n", err)
		return
	}
	fmt.Fprintf(w, "data start\t%d\n", start)
	fmt.Fprintf(w, "records\t%d\n", (totalSize-start)/layout.Stride)
}
