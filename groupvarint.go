package aehobak

// Group-varint integer stream codec (spec §4.2). Groups of four uint32
// values share one tag byte; each of the tag byte's four 2-bit fields
// selects how many data bytes (0, 1, 2 or 4) encode that value. A 0-byte
// field means the literal value 0. Padding entries past the true element
// count are encoded as value 0 (code 0, zero data bytes), so callers never
// need to explicitly pad their slices — gvEncode/gvDecode already treat
// indices beyond len(values) as zero, which is the same padding contract
// spec §4.2 requires implementations to agree on.
//
// The four 2-bit codes (0/1/2/3) map to byte lengths (0/1/2/4) exactly as
// StreamVByte's control byte does (see streamvbyte_decode.go's
// svbControlBlockSizeLUT, which this codec's dispatch table generalizes).

// gvMaxCompressedBytes returns the worst-case tag and data region sizes for
// n values, mirroring spec §4.2's max_compressed_bytes.
func gvMaxCompressedBytes(n int) (tagLen, dataLenMax int) {
	return ceilDiv4(n), 4 * n
}

// ceilDiv4 computes ⌈n/4⌉ for non-negative n.
func ceilDiv4(n int) int {
	return (n + 3) / 4
}

// gvCodeFor picks the minimal code/byte-length pair for v.
func gvCodeFor(v uint32) (code byte, blen int) {
	switch {
	case v == 0:
		return 0, 0
	case v < 1<<8:
		return 1, 1
	case v < 1<<16:
		return 2, 2
	default:
		return 3, 4
	}
}

// gvCodeLen maps a 2-bit code directly to its byte length.
var gvCodeLen = [4]int{0, 1, 2, 4}

// gvEncode packs values into tags/data (group-varint), returning the
// number of data bytes written. tags must have length >= ⌈len(values)/4⌉
// and data must have length >= 4*len(values) (gvMaxCompressedBytes sizes
// both exactly).
func gvEncode(values []uint32, tags, data []byte) int {
	n := len(values)
	tagLen := ceilDiv4(n)
	dpos := 0
	for g := 0; g < tagLen; g++ {
		var tag byte
		for lane := 0; lane < 4; lane++ {
			idx := g*4 + lane
			var v uint32
			if idx < n {
				v = values[idx]
			}
			code, blen := gvCodeFor(v)
			tag |= code << (uint(lane) * 2)
			switch blen {
			case 1:
				data[dpos] = byte(v)
			case 2:
				bo.PutUint16(data[dpos:], uint16(v))
			case 4:
				bo.PutUint32(data[dpos:], v)
			}
			dpos += blen
		}
		tags[g] = tag
	}
	return dpos
}

// gvTagDataLen sums the data-byte cost of a single tag byte's four fields.
func gvTagDataLen(t byte) int {
	return int(gvTagDataLenLUT[t])
}

// gvTagDataLenLUT is a precomputed per-tag-byte data length, the group-
// varint analogue of streamvbyte_decode.go's svbControlBlockSizeLUT.
var gvTagDataLenLUT [256]uint8

func init() {
	for t := range gvTagDataLenLUT {
		sum := 0
		for lane := 0; lane < 4; lane++ {
			code := (t >> (lane * 2)) & 0x3
			sum += gvCodeLen[code]
		}
		gvTagDataLenLUT[t] = uint8(sum)
	}
}

// gvDataLen sums data bytes over every tag byte in tags, without decoding
// — spec §4.2's data_len, used to locate the end of a data run.
func gvDataLen(tags []byte) int {
	return dispatchTagSum(tags)
}

// gvDecode decodes len(out) values from tags/data into out, returning the
// number of data bytes consumed. Fails with ErrUnexpectedEOF if tags/data
// are too short for the requested count.
func gvDecode(tags, data []byte, out []uint32) (int, error) {
	n := len(out)
	tagLen := ceilDiv4(n)
	if len(tags) < tagLen {
		return 0, eof("groupvarint: need %d tag bytes, got %d", tagLen, len(tags))
	}
	dpos := 0
	for g := 0; g < tagLen; g++ {
		tag := tags[g]
		for lane := 0; lane < 4; lane++ {
			idx := g*4 + lane
			code := (tag >> (uint(lane) * 2)) & 0x3
			blen := gvCodeLen[code]
			if dpos+blen > len(data) {
				return dpos, eof("groupvarint: need %d data bytes, got %d", dpos+blen, len(data))
			}
			var v uint32
			switch blen {
			case 1:
				v = uint32(data[dpos])
			case 2:
				v = uint32(bo.Uint16(data[dpos:]))
			case 4:
				v = bo.Uint32(data[dpos:])
			}
			dpos += blen
			if idx < n {
				out[idx] = v
			}
		}
	}
	return dpos, nil
}

// gvDecodeDeltas decodes len(out) values and replaces them with their
// running prefix sum starting from base, yielding a monotone
// non-decreasing sequence (spec §4.2's decode_deltas). Callers reconstructing
// strictly-increasing positions from "skip" values must still apply the
// per-index +i correction described in spec §4.4 themselves.
func gvDecodeDeltas(base uint32, tags, data []byte, out []uint32) (int, error) {
	n, err := gvDecode(tags, data, out)
	if err != nil {
		return n, err
	}
	acc := base
	for i := range out {
		acc += out[i]
		out[i] = acc
	}
	return n, nil
}
