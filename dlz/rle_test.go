package dlz

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/efidecode/dlog/errs"
)

func TestExpandRLE_Literals(t *testing.T) {
	in := []byte{0x01, 0x02, 0x03}
	out, err := ExpandRLE(in)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestExpandRLE_Run(t *testing.T) {
	out, err := ExpandRLE([]byte{Marker, 0x03, 0x41})
	require.NoError(t, err)
	require.Equal(t, []byte{0x41, 0x41, 0x41}, out)
}

func TestExpandRLE_MaxRun(t *testing.T) {
	out, err := ExpandRLE([]byte{Marker, 0xFE, 0x00})
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{0x00}, 0xFE), out)
}

func TestExpandRLE_EscapedMarker(t *testing.T) {
	// Count zero is the escape form: it emits a single literal 0xFF and the
	// value byte is discarded.
	out, err := ExpandRLE([]byte{Marker, 0x00, 0x7F})
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF}, out)
}

func TestExpandRLE_MixedStream(t *testing.T) {
	in := []byte{0x10, Marker, 0x02, 0xAB, 0x20, Marker, 0x00, 0x00, 0x30}
	out, err := ExpandRLE(in)
	require.NoError(t, err)
	require.Equal(t, []byte{0x10, 0xAB, 0xAB, 0x20, 0xFF, 0x30}, out)
}

func TestExpandRLE_TruncatedTriple(t *testing.T) {
	// Marker as the last byte.
	_, err := ExpandRLE([]byte{0x01, Marker})
	require.ErrorIs(t, err, errs.ErrTruncatedRunLength)

	// Marker with only the count byte remaining.
	_, err = ExpandRLE([]byte{0x01, Marker, 0x05})
	require.ErrorIs(t, err, errs.ErrTruncatedRunLength)
}

func TestExpandRLE_Deterministic(t *testing.T) {
	in := []byte{Marker, 0x04, 0x55, 0x01, Marker, 0x00, 0xEE}
	first, err := ExpandRLE(in)
	require.NoError(t, err)
	second, err := ExpandRLE(in)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestExpandRLE_Empty(t *testing.T) {
	out, err := ExpandRLE(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}
