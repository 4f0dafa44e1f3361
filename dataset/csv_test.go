package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/efidecode/dlog/compress"
	"github.com/efidecode/dlog/format"
	"github.com/efidecode/dlog/schema"
)

func TestWriteCSV_Plain(t *testing.T) {
	ds, err := Assemble([][]float64{{6500, 12.5}, {7000, 40}}, twoColumnLayout())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ds.WriteCSV(&buf))
	require.Equal(t, "RPM,TPS\n6500,12.5\n7000,40\n", buf.String())
}

func TestWriteCSV_QuotesSpecialNames(t *testing.T) {
	layout := schema.Layout{
		Version: format.VersionV6,
		Stride:  4,
		Descriptors: []schema.Descriptor{
			{ID: 0, Name: `A "B", C`, ByteOffset: 0, Kind: format.KindF32, Scale: 1},
		},
	}
	ds, err := Assemble([][]float64{{1}}, layout)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ds.WriteCSV(&buf))
	require.Equal(t, "\"A \"\"B\"\", C\"\n1\n", buf.String())
}

func TestWriteCSV_Precision(t *testing.T) {
	ds, err := Assemble([][]float64{{6512.3456, 1.0 / 3.0}}, twoColumnLayout())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ds.WriteCSV(&buf, WithPrecision(4)))
	require.Equal(t, "RPM,TPS\n6512,0.3333\n", buf.String())
}

func TestWriteCSV_Gzip(t *testing.T) {
	ds, err := Assemble([][]float64{{6500, 12.5}}, twoColumnLayout())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ds.WriteCSV(&buf, WithCompression(format.CompressionGzip)))

	codec, err := compress.GetCodec(format.CompressionGzip)
	require.NoError(t, err)
	plain, err := codec.Decompress(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, "RPM,TPS\n6500,12.5\n", string(plain))
}

func TestWriteCSV_RejectsUnknownCompression(t *testing.T) {
	ds, err := Assemble([][]float64{{1, 2}}, twoColumnLayout())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.Error(t, ds.WriteCSV(&buf, WithCompression(format.CompressionType(0xEE))))
}

func TestExportCSV_AppendsCodecExtension(t *testing.T) {
	ds, err := Assemble([][]float64{{6500, 12.5}}, twoColumnLayout())
	require.NoError(t, err)

	dir := t.TempDir()

	plainPath := filepath.Join(dir, "log.csv")
	require.NoError(t, ds.ExportCSV(plainPath))
	data, err := os.ReadFile(plainPath)
	require.NoError(t, err)
	require.Equal(t, "RPM,TPS\n6500,12.5\n", string(data))

	zstdPath := filepath.Join(dir, "log.csv")
	require.NoError(t, ds.ExportCSV(zstdPath, WithCompression(format.CompressionZstd)))
	compressed, err := os.ReadFile(zstdPath + ".zst")
	require.NoError(t, err)

	codec, err := compress.GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	plain, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, "RPM,TPS\n6500,12.5\n", string(plain))
}
