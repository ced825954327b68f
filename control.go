package aehobak

import "encoding/binary"

// BsdiffControl is the wide, 24-byte control triple used by the classical
// bsdiff wire format: add/copy byte counts and a signed seek offset.
//
// Raw bsdiff serializes Seek using a sign-magnitude convention: bit 63 is
// the sign flag and the lower 63 bits hold the absolute value. Both 0 and
// -0 encode to the all-zero 8-byte field, and i64::MIN encodes with only
// bit 63 set. See ControlBytes/ParseControlBytes and the reference in
// other_examples' bsdiff bspatch.go (offtin).
type BsdiffControl struct {
	Add  uint64
	Copy uint64
	Seek int64
}

// controlBytes is the fixed wire size of a BsdiffControl.
const controlBytes = 24

// ControlBytes writes the 24-byte little-endian wire form of c into dst,
// which must have length >= controlBytes (callers slice a larger buffer).
func (c BsdiffControl) ControlBytes(dst []byte) {
	bo.PutUint64(dst[0:8], c.Add)
	bo.PutUint64(dst[8:16], c.Copy)
	bo.PutUint64(dst[16:24], seekToWire(c.Seek))
}

// ParseControlBytes reads a 24-byte bsdiff control triple from src.
func ParseControlBytes(src []byte) (BsdiffControl, error) {
	if len(src) < controlBytes {
		return BsdiffControl{}, eof("control: need %d bytes, got %d", controlBytes, len(src))
	}
	return BsdiffControl{
		Add:  bo.Uint64(src[0:8]),
		Copy: bo.Uint64(src[8:16]),
		Seek: seekFromWire(bo.Uint64(src[16:24])),
	}, nil
}

// seekToWire applies bsdiff's sign-magnitude convention to a signed offset.
func seekToWire(x int64) uint64 {
	if x < 0 {
		// i64::MIN negates to itself in two's complement; -(x) as uint64
		// still yields the correct magnitude via wraparound, matching the
		// reference's "set bit 63, lower 63 bits hold the absolute value".
		return uint64(-x) | signBit
	}
	return uint64(x)
}

// seekFromWire inverts seekToWire per spec §3's reading rule: u <= 2^63 ->
// u as i64 (this also covers i64::MIN, whose wire form is exactly 2^63);
// else -(2^63 ^ u). Branching on the sign bit instead of magnitude is wrong:
// u == 2^63 has the sign bit set but must still take the first branch.
func seekFromWire(u uint64) int64 {
	if u <= signBit {
		return int64(u)
	}
	return -int64(u &^ signBit)
}

const signBit = uint64(1) << 63

// AehobakControl is the narrow, 32-bit control triple used on the wire in
// the compact stream. Seek is zig-zag mapped to transport a signed value in
// an unsigned lane.
type AehobakControl struct {
	Add  uint32
	Copy uint32
	Seek int32
}

// ToBsdiff is the infallible widening conversion back to BsdiffControl.
func (c AehobakControl) ToBsdiff() BsdiffControl {
	return BsdiffControl{
		Add:  uint64(c.Add),
		Copy: uint64(c.Copy),
		Seek: int64(c.Seek),
	}
}

// NarrowFromBsdiff performs the fallible narrowing conversion. It fails with
// ErrInvalidData if any field overflows u32/i32.
func NarrowFromBsdiff(c BsdiffControl) (AehobakControl, error) {
	if c.Add > maxUint32 {
		return AehobakControl{}, invalid("control: add %d overflows u32", c.Add)
	}
	if c.Copy > maxUint32 {
		return AehobakControl{}, invalid("control: copy %d overflows u32", c.Copy)
	}
	if c.Seek > maxInt32 || c.Seek < minInt32 {
		return AehobakControl{}, invalid("control: seek %d overflows i32", c.Seek)
	}
	return AehobakControl{
		Add:  uint32(c.Add),
		Copy: uint32(c.Copy),
		Seek: int32(c.Seek),
	}, nil
}

const (
	maxUint32 = uint64(1)<<32 - 1
	maxInt32  = int64(1)<<31 - 1
	minInt32  = -(int64(1) << 31)
)

// zigzagEncode32 maps a signed 32-bit value to an unsigned transport value:
// u = (x>>31) ^ (x<<1). Mirrors Akron-fastpfor-go's zigzagEncode32.
func zigzagEncode32(x int32) uint32 {
	return uint32((x >> 31) ^ (x << 1))
}

// zigzagDecode32 inverts zigzagEncode32: x = (u>>1) ^ -(u&1).
func zigzagDecode32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

var bo = binary.LittleEndian
