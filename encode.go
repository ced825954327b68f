package aehobak

import "io"

// streams holds the parallel sequences the encoder builds while walking a
// bsdiff control stream (spec §4.4's "data model").
type streams struct {
	literals   []byte
	adds       []uint32
	copies     []uint32
	seeksZZ    []uint32 // zig-zag mapped seek values, ready for the wire
	skips      []uint32 // delta_positions stored as first-differences minus one
	deltaDiffs []byte
}

// Encode consumes a well-formed bsdiff control stream (spec §3/§4.4 — a
// sequence of 24-byte controls each followed by add-delta bytes and
// copy-literal bytes, ending on an exact boundary) and writes the compact
// container form to w.
func Encode(patch []byte, w io.Writer) error {
	st, err := buildStreams(patch)
	if err != nil {
		return err
	}
	return writeContainer(w, st)
}

// buildStreams walks patch once, splitting it into the six parallel
// sequences of spec §3. It mirrors Akron-fastpfor-go's PackDelta in spirit:
// a single streaming pass that produces the arrays a later pack step will
// compress, rather than compressing incrementally.
func buildStreams(patch []byte) (*streams, error) {
	var st streams
	var addCursor, deltaCursor uint64
	pos := 0
	for pos < len(patch) {
		ctrl, err := ParseControlBytes(patch[pos:])
		if err != nil {
			return nil, err
		}
		pos += controlBytes

		narrow, err := NarrowFromBsdiff(ctrl)
		if err != nil {
			return nil, err
		}

		addN := int(narrow.Add)
		if pos+addN > len(patch) {
			return nil, eof("encode: truncated add region (control %d)", len(st.adds))
		}
		addBytes := patch[pos : pos+addN]
		pos += addN

		for i, b := range addBytes {
			if b == 0 {
				continue
			}
			skip := addCursor + uint64(i) - deltaCursor
			if skip > maxUint32 {
				return nil, invalid("encode: delta skip %d overflows u32", skip)
			}
			st.skips = append(st.skips, uint32(skip))
			st.deltaDiffs = append(st.deltaDiffs, b)
			deltaCursor = addCursor + uint64(i) + 1
		}
		addCursor += uint64(addN)

		copyN := int(narrow.Copy)
		if pos+copyN > len(patch) {
			return nil, eof("encode: truncated copy region (control %d)", len(st.adds))
		}
		st.literals = append(st.literals, patch[pos:pos+copyN]...)
		pos += copyN

		st.adds = append(st.adds, narrow.Add)
		st.copies = append(st.copies, narrow.Copy)
		st.seeksZZ = append(st.seeksZZ, zigzagEncode32(narrow.Seek))
	}
	return &st, nil
}

// writeContainer emits the framed container of spec §4.3 from already-built
// streams. Each of the four integer arrays (add, copy, seek, skip/delta) is
// group-varint-encoded independently: spec §4.4 describes concatenating
// them into one sequence before running the codec and then re-splitting the
// resulting tag/data runs, but since every array is implicitly zero-padded
// to a multiple of 4 by gvEncode/gvDecode (§4.2), encoding each array on its
// own produces byte-identical tag and data runs to that two-step
// concatenate-then-split — with none of the bookkeeping.
func writeContainer(w io.Writer, st *streams) error {
	C := len(st.adds)
	D := len(st.skips)
	L := len(st.literals)

	tagLen, dataMaxC := gvMaxCompressedBytes(C)
	_, dataMaxD := gvMaxCompressedBytes(D)
	deltaTagLen := ceilDiv4(D)

	addTags := make([]byte, tagLen)
	copyTags := make([]byte, tagLen)
	seekTags := make([]byte, tagLen)
	deltaTags := make([]byte, deltaTagLen)

	addData := make([]byte, dataMaxC)
	copyData := make([]byte, dataMaxC)
	seekData := make([]byte, dataMaxC)
	deltaData := make([]byte, dataMaxD)

	addN := gvEncode(st.adds, addTags, addData)
	copyN := gvEncode(st.copies, copyTags, copyData)
	seekN := gvEncode(st.seeksZZ, seekTags, seekData)
	deltaN := gvEncode(st.skips, deltaTags, deltaData)

	dataLen := addN + copyN + seekN + deltaN

	if err := writePrefix(w, uint32(L), uint32(C), uint32(D), uint32(dataLen)); err != nil {
		return err
	}
	if err := writeAll(w, st.literals); err != nil {
		return err
	}
	if err := writeAll(w, addTags, copyTags, seekTags, deltaTags); err != nil {
		return err
	}
	if err := writeAll(w, st.deltaDiffs); err != nil {
		return err
	}
	if err := writeAll(w, addData[:addN], copyData[:copyN], seekData[:seekN], deltaData[:deltaN]); err != nil {
		return err
	}
	return nil
}
