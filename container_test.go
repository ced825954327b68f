package aehobak

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixRoundTrip(t *testing.T) {
	cases := [][4]uint32{
		{0, 0, 0, 0},
		{1, 2, 3, 4},
		{1 << 20, 1 << 10, 0, 1 << 30},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		require.NoError(t, writePrefix(&buf, c[0], c[1], c[2], c[3]))
		l, cc, d, dl, err := readPrefix(&buf)
		require.NoError(t, err)
		assert.Equal(t, c, [4]uint32{l, cc, d, dl})
	}
}

func TestParseContainerTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeContainer(&buf, &streams{
		literals: []byte("hi"),
		adds:     []uint32{3, 0},
		copies:   []uint32{0, 2},
		seeksZZ:  []uint32{zigzagEncode32(0), zigzagEncode32(0)},
	}))

	full := buf.Bytes()
	_, err := parseContainer(bytes.NewReader(full[:len(full)-1]))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}
