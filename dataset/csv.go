package dataset

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/efidecode/dlog/compress"
	"github.com/efidecode/dlog/format"
	"github.com/efidecode/dlog/internal/options"
	"github.com/efidecode/dlog/internal/pool"
)

type csvConfig struct {
	compression format.CompressionType
	precision   int
}

// CSVOption configures CSV serialization.
type CSVOption = options.Option[*csvConfig]

// WithCompression compresses the serialized CSV with the given codec.
// ExportCSV appends the codec's file extension to the output path.
func WithCompression(c format.CompressionType) CSVOption {
	return options.New(func(cfg *csvConfig) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// WithPrecision sets the number of significant digits written per value.
// The default -1 writes the shortest representation that round-trips.
func WithPrecision(p int) CSVOption {
	return options.NoError(func(cfg *csvConfig) {
		cfg.precision = p
	})
}

// WriteCSV serializes the dataset as one header line of column names
// followed by one line per row, and writes it (compressed, if configured)
// to w.
func (ds *Dataset) WriteCSV(w io.Writer, opts ...CSVOption) error {
	cfg := &csvConfig{compression: format.CompressionNone, precision: -1}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	bb := pool.GetExportBuffer()
	defer pool.PutExportBuffer(bb)

	ds.appendCSV(bb, cfg.precision)

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return err
	}
	out, err := codec.Compress(bb.Bytes())
	if err != nil {
		return fmt.Errorf("compress csv: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	return nil
}

// ExportCSV writes the dataset to path, appending the compression codec's
// file extension when one is configured (e.g. log.csv.gz).
func (ds *Dataset) ExportCSV(path string, opts ...CSVOption) error {
	cfg := &csvConfig{compression: format.CompressionNone, precision: -1}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	f, err := os.Create(path + cfg.compression.Ext())
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	werr := ds.WriteCSV(f, opts...)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return fmt.Errorf("close csv: %w", cerr)
	}

	return nil
}

func (ds *Dataset) appendCSV(bb *pool.ByteBuffer, precision int) {
	for i, d := range ds.descriptors {
		if i > 0 {
			bb.B = append(bb.B, ',')
		}
		bb.B = appendCSVField(bb.B, d.Name)
	}
	bb.B = append(bb.B, '\n')

	for _, row := range ds.rows {
		for i, v := range row {
			if i > 0 {
				bb.B = append(bb.B, ',')
			}
			bb.B = strconv.AppendFloat(bb.B, v, 'g', precision, 64)
		}
		bb.B = append(bb.B, '\n')
	}
}

// appendCSVField quotes a column name only when it contains a separator or
// quote. Vendor column names use spaces freely, which need no quoting.
func appendCSVField(dst []byte, s string) []byte {
	needsQuote := false
	for i := 0; i < len(s); i++ {
		if s[i] == ',' || s[i] == '"' || s[i] == '\n' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return append(dst, s...)
	}

	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			dst = append(dst, '"', '"')
			continue
		}
		dst = append(dst, s[i])
	}

	return append(dst, '"')
}
