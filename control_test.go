package aehobak

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBsdiffControlRoundTrip(t *testing.T) {
	cases := []BsdiffControl{
		{Add: 0, Copy: 0, Seek: 0},
		{Add: 1, Copy: 2, Seek: -1},
		{Add: 1 << 40, Copy: 1 << 50, Seek: -(1 << 40)},
		{Add: 0, Copy: 0, Seek: math.MinInt64 + 1},
		{Add: 0, Copy: 0, Seek: math.MinInt64},
	}
	var buf [controlBytes]byte
	for _, c := range cases {
		c.ControlBytes(buf[:])
		got, err := ParseControlBytes(buf[:])
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

// TestSeekWireMinInt64 checks spec §3's concrete vector: (0,0,i64::MIN)
// serializes with byte 23 == 0x80 and every other byte zero (u == 2^63),
// and reads back as i64::MIN exactly — the boundary value spec §8's
// testable property #1 calls out explicitly.
func TestSeekWireMinInt64(t *testing.T) {
	c := BsdiffControl{Seek: math.MinInt64}
	var buf [controlBytes]byte
	c.ControlBytes(buf[:])

	want := make([]byte, controlBytes)
	want[23] = 0x80
	assert.Equal(t, want, buf[:])

	got, err := ParseControlBytes(buf[:])
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), got.Seek)
}

func TestParseControlBytesTooShort(t *testing.T) {
	_, err := ParseControlBytes(make([]byte, controlBytes-1))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestNarrowFromBsdiffOverflow(t *testing.T) {
	t.Run("add overflow", func(t *testing.T) {
		_, err := NarrowFromBsdiff(BsdiffControl{Add: maxUint32 + 1})
		assert.ErrorIs(t, err, ErrInvalidData)
	})
	t.Run("copy overflow", func(t *testing.T) {
		_, err := NarrowFromBsdiff(BsdiffControl{Copy: maxUint32 + 1})
		assert.ErrorIs(t, err, ErrInvalidData)
	})
	t.Run("seek overflow positive", func(t *testing.T) {
		_, err := NarrowFromBsdiff(BsdiffControl{Seek: maxInt32 + 1})
		assert.ErrorIs(t, err, ErrInvalidData)
	})
	t.Run("seek overflow negative", func(t *testing.T) {
		_, err := NarrowFromBsdiff(BsdiffControl{Seek: minInt32 - 1})
		assert.ErrorIs(t, err, ErrInvalidData)
	})
	t.Run("in range", func(t *testing.T) {
		n, err := NarrowFromBsdiff(BsdiffControl{Add: 5, Copy: 6, Seek: -7})
		require.NoError(t, err)
		assert.Equal(t, AehobakControl{Add: 5, Copy: 6, Seek: -7}, n)
		assert.Equal(t, BsdiffControl{Add: 5, Copy: 6, Seek: -7}, n.ToBsdiff())
	})
}

func TestZigzag32RoundTrip(t *testing.T) {
	vals := []int32{0, 1, -1, 2, -2, 1 << 30, -(1 << 30), minInt32Const(), maxInt32Const()}
	for _, v := range vals {
		assert.Equal(t, v, zigzagDecode32(zigzagEncode32(v)))
	}
}

func minInt32Const() int32 { return -(1 << 31) }
func maxInt32Const() int32 { return (1 << 31) - 1 }
