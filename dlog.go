// Package dlog decodes Holley EFI binary datalogs (.DL and .DLZ containers)
// into ordered, named, scaled tabular datasets.
//
// A .DLZ file is a compressed copy of a .DL file; a .DL file carries one of
// four on-disk schema variants (V3 through V6) distinguished by the header's
// magic number and variant field. The engine is three composable entry
// points, and CLI tools layer file I/O and output formatting on top:
//
//	dlData, err := dlog.Decompress(dlzData)   // DLZ bytes -> DL bytes
//	version, err := dlog.Detect(dlData)       // DL bytes -> schema version
//	ds, err := dlog.Decode(dlData, version)   // DL bytes -> dataset
//
// Or, end to end from a file path:
//
//	ds, err := dlog.DecodeFile("pass42.dlz")
//	rpm, _ := ds.Column("RPM")
//
// V3 and V6 logs decode fully. V4 logs decode with a verified column subset
// and the dataset reports Partial() == true. V5 logs use a sparse on-disk
// layout and always fail with errs.ErrUnsupportedSparseFormat; the vendor
// software converts them to V6 on open.
//
// Every failure is local to one decode attempt and comes back as a wrapped
// sentinel from the errs package; nothing here terminates the process.
// Decoding separate files concurrently is safe: the only shared state is
// the immutable schema registry.
package dlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/efidecode/dlog/dataset"
	"github.com/efidecode/dlog/dlz"
	"github.com/efidecode/dlog/format"
	"github.com/efidecode/dlog/schema"
	"github.com/efidecode/dlog/section"
)

// Decompress converts DLZ container bytes into the equivalent DL container
// bytes. Output is byte-identical to the vendor-produced .DL file.
func Decompress(dlzData []byte) ([]byte, error) {
	return dlz.Decompress(dlzData)
}

// Detect classifies DL container bytes by the header's (magic, variant)
// pair. Unknown combinations fail with errs.ErrUnrecognizedFormat, which
// callers should treat as an expected outcome for foreign files.
func Detect(dlData []byte) (format.SchemaVersion, error) {
	return section.Detect(dlData)
}

// Decode decodes DL container bytes as the given schema version into a
// dataset. V5 fails with errs.ErrUnsupportedSparseFormat.
func Decode(dlData []byte, version format.SchemaVersion) (*dataset.Dataset, error) {
	layout, err := schema.Lookup(version)
	if err != nil {
		return nil, err
	}

	return dataset.Decode(dlData, layout)
}

// DetectAndDecode classifies DL container bytes and decodes them in one
// call.
func DetectAndDecode(dlData []byte) (*dataset.Dataset, error) {
	version, err := Detect(dlData)
	if err != nil {
		return nil, err
	}

	return Decode(dlData, version)
}

// DecodeFile reads a .dl or .dlz file (extension matched case-insensitively)
// and decodes it end to end. DLZ input is decompressed first.
func DecodeFile(path string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".dlz") {
		if data, err = Decompress(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	ds, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}

// DecompressFile reads a .dlz file and writes the decompressed .dl
// container to dlPath. An empty dlPath derives the output name by swapping
// the extension to .dl.
func DecompressFile(dlzPath, dlPath string) (string, error) {
	data, err := os.ReadFile(dlzPath)
	if err != nil {
		return "", fmt.Errorf("read dlz: %w", err)
	}

	dlData, err := Decompress(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", dlzPath, err)
	}

	if dlPath == "" {
		dlPath = strings.TrimSuffix(dlzPath, filepath.Ext(dlzPath)) + ".dl"
	}
	if err := os.WriteFile(dlPath, dlData, 0o644); err != nil {
		return "", fmt.Errorf("write dl: %w", err)
	}

	return dlPath, nil
}
