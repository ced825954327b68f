package aehobak

import "io"

// Container framing (spec §4.3): a 1-byte prefix tag, the prefix's own
// group-varint data (the four header counts L, C, D, dataLen), then
// literals, tags, delta-diffs and data regions in that fixed order.

// writePrefix writes the prefix-tag byte and its group-varint data bytes
// encoding the four header counts.
func writePrefix(w io.Writer, l, c, d, dataLen uint32) error {
	counts := [4]uint32{l, c, d, dataLen}
	var tag [1]byte
	var data [16]byte // gvMaxCompressedBytes(4) -> dataLenMax = 16
	n := gvEncode(counts[:], tag[:], data[:])
	if _, err := w.Write(tag[:]); err != nil {
		return writeErr(err)
	}
	if _, err := w.Write(data[:n]); err != nil {
		return writeErr(err)
	}
	return nil
}

// readPrefix reads the prefix-tag byte and its data, returning the four
// header counts (L, C, D, dataLen).
func readPrefix(r io.Reader) (l, c, d, dataLen uint32, err error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return 0, 0, 0, 0, wrapReadFull(err, "prefix tag")
	}
	dl := gvTagDataLen(tag[0])
	data := make([]byte, dl)
	if dl > 0 {
		if _, err := io.ReadFull(r, data); err != nil {
			return 0, 0, 0, 0, wrapReadFull(err, "prefix data")
		}
	}
	var counts [4]uint32
	if _, err := gvDecode(tag[:], data, counts[:]); err != nil {
		return 0, 0, 0, 0, err
	}
	return counts[0], counts[1], counts[2], counts[3], nil
}

// wrapReadFull normalizes io.EOF/io.ErrUnexpectedEOF from io.ReadFull into
// this package's ErrUnexpectedEOF, and anything else into the "Other" kind.
func wrapReadFull(err error, what string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return eof("container: truncated %s", what)
	}
	return readErr(err)
}

// writeAll is a small helper so call sites read as a flat sequence of
// regions instead of repeated err-checked w.Write calls.
func writeAll(w io.Writer, bufs ...[]byte) error {
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		if _, err := w.Write(b); err != nil {
			return writeErr(err)
		}
	}
	return nil
}

// readAll reads exactly len(buf) bytes from r into buf.
func readAll(r io.Reader, buf []byte, what string) error {
	if len(buf) == 0 {
		return nil
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return wrapReadFull(err, what)
	}
	return nil
}

// parsedContainer is the decoded form of a compact container shared by
// Decode and Patch: every field is fully materialized and validated except
// for the strictly-increasing/in-range check on Positions, which callers
// that need it perform themselves (Decode checks both; Patch checks only
// that every position is reached by some control's add region, and never
// writes outside its output).
type parsedContainer struct {
	Literals   []byte
	Adds       []uint32
	Copies     []uint32
	Seeks      []int32  // zig-zag decoded, ready to use
	Positions  []uint32 // absolute add-region offsets (the §4.4 "+i" correction already applied)
	DeltaDiffs []byte
}

// parseContainer reads and validates every region of spec §4.3's framing,
// leaving the per-control reconstruction (bsdiff-stream rebuild in Decode,
// direct new-buffer synthesis in Patch) to the caller.
func parseContainer(r io.Reader) (*parsedContainer, error) {
	L, C, D, dataLen, err := readPrefix(r)
	if err != nil {
		return nil, err
	}

	literals := make([]byte, L)
	if err := readAll(r, literals, "literals"); err != nil {
		return nil, err
	}

	tagLen, _ := gvMaxCompressedBytes(int(C))
	deltaTagLen := ceilDiv4(int(D))

	addTags := make([]byte, tagLen)
	copyTags := make([]byte, tagLen)
	seekTags := make([]byte, tagLen)
	deltaTags := make([]byte, deltaTagLen)
	if err := readAll(r, addTags, "add tags"); err != nil {
		return nil, err
	}
	if err := readAll(r, copyTags, "copy tags"); err != nil {
		return nil, err
	}
	if err := readAll(r, seekTags, "seek tags"); err != nil {
		return nil, err
	}
	if err := readAll(r, deltaTags, "delta tags"); err != nil {
		return nil, err
	}

	deltaDiffs := make([]byte, D)
	if err := readAll(r, deltaDiffs, "delta diffs"); err != nil {
		return nil, err
	}

	addDataLen := gvDataLen(addTags)
	copyDataLen := gvDataLen(copyTags)
	seekDataLen := gvDataLen(seekTags)
	deltaDataLen := gvDataLen(deltaTags)
	if uint32(addDataLen+copyDataLen+seekDataLen+deltaDataLen) != dataLen {
		return nil, invalid("container: data_len mismatch (prefix says %d, regions sum to %d)",
			dataLen, addDataLen+copyDataLen+seekDataLen+deltaDataLen)
	}

	addData := make([]byte, addDataLen)
	copyData := make([]byte, copyDataLen)
	seekData := make([]byte, seekDataLen)
	deltaData := make([]byte, deltaDataLen)
	if err := readAll(r, addData, "add data"); err != nil {
		return nil, err
	}
	if err := readAll(r, copyData, "copy data"); err != nil {
		return nil, err
	}
	if err := readAll(r, seekData, "seek data"); err != nil {
		return nil, err
	}
	if err := readAll(r, deltaData, "delta data"); err != nil {
		return nil, err
	}

	adds := make([]uint32, C)
	copies := make([]uint32, C)
	seeksZZ := make([]uint32, C)
	skips := make([]uint32, D)
	if _, err := gvDecode(addTags, addData, adds); err != nil {
		return nil, err
	}
	if _, err := gvDecode(copyTags, copyData, copies); err != nil {
		return nil, err
	}
	if _, err := gvDecode(seekTags, seekData, seeksZZ); err != nil {
		return nil, err
	}
	// skips decode via the running prefix sum (spec §4.2's decode_deltas);
	// the per-index +i correction below undoes the "minus one" spec §4.4
	// applies when storing first-differences of a strictly increasing
	// sequence.
	if _, err := gvDecodeDeltas(0, deltaTags, deltaData, skips); err != nil {
		return nil, err
	}
	for i := range skips {
		skips[i] += uint32(i)
	}

	seeks := make([]int32, C)
	for i, z := range seeksZZ {
		seeks[i] = zigzagDecode32(z)
	}

	return &parsedContainer{
		Literals:   literals,
		Adds:       adds,
		Copies:     copies,
		Seeks:      seeks,
		Positions:  skips,
		DeltaDiffs: deltaDiffs,
	}, nil
}
