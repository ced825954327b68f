package aehobak

import "bytes"

// Patch applies the compact form directly to old, producing out without
// ever reconstructing the bsdiff intermediate (spec §4.6). newOut is used
// as a fixed-capacity scratch buffer: Patch appends into it but never grows
// it past cap(newOut), returning ErrUnexpectedEOF the moment that ceiling
// would be exceeded, so memory usage stays caller-controlled exactly as
// spec §5 requires.
//
// Grounded on original_source/src/patch.rs's patch(): old_cursor tracks the
// read position in old, while copy_cursor accumulates only the copy
// lengths emitted so far. Adding copy_cursor to a delta position (an
// absolute offset into the concatenated add region) yields the correct
// index into out, because len(out) before each control already equals
// (cumulative add) + (cumulative copy) — the two cursors' roles only look
// mismatched in isolation.
func Patch(old, compact []byte, newOut []byte) ([]byte, error) {
	pc, err := parseContainer(bytes.NewReader(compact))
	if err != nil {
		return newOut[:0], err
	}

	out := newOut[:0]
	capNew := uint64(cap(newOut))
	var oldCursor, copyCursor uint64
	posIdx := 0
	D := len(pc.Positions)
	literals := pc.Literals

	for k := range pc.Adds {
		add := uint64(pc.Adds[k])
		cp := uint64(pc.Copies[k])
		seek := int64(pc.Seeks[k])

		if oldCursor+add > uint64(len(old)) {
			return out, eof("patch: add region exceeds old at control %d", k)
		}
		if capNew-uint64(len(out)) < add {
			return out, eof("patch: out capacity exceeded at control %d", k)
		}
		out = append(out, old[oldCursor:oldCursor+add]...)

		for posIdx < D {
			deltaCursor := copyCursor + uint64(pc.Positions[posIdx])
			if deltaCursor >= uint64(len(out)) {
				break
			}
			out[deltaCursor] += pc.DeltaDiffs[posIdx]
			posIdx++
		}

		if uint64(cp) > uint64(len(literals)) {
			return out, invalid("patch: literal region exhausted at control %d", k)
		}
		if capNew-uint64(len(out)) < cp {
			return out, eof("patch: out capacity exceeded at control %d", k)
		}
		out = append(out, literals[:cp]...)
		literals = literals[cp:]
		copyCursor += cp

		nextOld := int64(oldCursor) + int64(add) + seek
		if nextOld < 0 || uint64(nextOld) > uint64(len(old)) {
			return out, invalid("patch: old cursor out of range after control %d", k)
		}
		oldCursor = uint64(nextOld)
	}

	if posIdx != D {
		return out, invalid("patch: delta position beyond final add region")
	}

	return out, nil
}
