// Command dlzd decompresses Holley .dlz datalogs into raw .dl containers.
//
// Usage:
//
//	dlzd [-out file.dl] [-quiet] file.dlz [file.dlz ...]
//
// With multiple inputs the -out flag is rejected and each output name is
// derived from its input by swapping the extension to .dl.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/efidecode/dlog"
)

func main() {
	out := flag.String("out", "", "output .dl path (single input only)")
	quiet := flag.Bool("quiet", false, "suppress per-file size output")
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: dlzd [-out file.dl] [-quiet] file.dlz [file.dlz ...]")
		os.Exit(1)
	}
	if *out != "" && len(inputs) > 1 {
		fmt.Fprintln(os.Stderr, "dlzd: -out cannot be used with multiple inputs")
		os.Exit(1)
	}

	failed := 0
	for _, in := range inputs {
		if err := decompressOne(in, *out, *quiet); err != nil {
			fmt.Fprintf(os.Stderr, "dlzd: %v\n", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func decompressOne(in, out string, quiet bool) error {
	inInfo, err := os.Stat(in)
	if err != nil {
		return err
	}

	outPath, err := dlog.DecompressFile(in, out)
	if err != nil {
		return err
	}

	if !quiet {
		outInfo, err := os.Stat(outPath)
		if err != nil {
			return err
		}
		ratio := float64(outInfo.Size()) / float64(inInfo.Size())
		fmt.Printf("%s -> %s (%d -> %d bytes, %.2fx)\n",
			in, outPath, inInfo.Size(), outInfo.Size(), ratio)
	}

	return nil
}
