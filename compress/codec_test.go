package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/efidecode/dlog/format"
)

func codecTestPayload() []byte {
	// CSV-shaped payload: repetitive header plus numeric rows.
	var buf bytes.Buffer
	buf.WriteString("Point Number,RTC,RPM,Inj PW,Duty Cycle\n")
	for i := 0; i < 500; i++ {
		buf.WriteString("1,100,6500.5,3.2,45.1\n")
	}

	return buf.Bytes()
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := codecTestPayload()

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionGzip,
		format.CompressionZstd,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err, "%s", ct)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err, "%s", ct)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err, "%s", ct)
		require.Equal(t, payload, restored, "%s round trip", ct)

		if ct != format.CompressionNone {
			require.Less(t, len(compressed), len(payload), "%s should shrink repetitive CSV", ct)
		}
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionGzip,
		format.CompressionZstd,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, restored, "%s", ct)
	}
}

func TestGetCodec_Unsupported(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0xEE))
	require.Error(t, err)
}

func TestCreateCodec(t *testing.T) {
	codec, err := CreateCodec(format.CompressionGzip, "csv")
	require.NoError(t, err)
	require.NotNil(t, codec)

	_, err = CreateCodec(format.CompressionType(0xEE), "csv")
	require.ErrorContains(t, err, "csv")
}

func TestZstd_RejectsCorruptedFrame(t *testing.T) {
	codec, err := GetCodec(format.CompressionZstd)
	require.NoError(t, err)

	_, err = codec.Decompress([]byte{0x01, 0x02, 0x03, 0x04})
	require.Error(t, err)
}

func TestGzip_RejectsCorruptedStream(t *testing.T) {
	codec, err := GetCodec(format.CompressionGzip)
	require.NoError(t, err)

	_, err = codec.Decompress([]byte("not gzip"))
	require.Error(t, err)
}
