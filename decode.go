package aehobak

import "io"

// Decode reads a compact container from r and appends the reconstructed
// bsdiff control stream to dst, returning the grown slice. dst may be nil;
// its existing contents (if any) are preserved exactly as append does.
func Decode(r io.Reader, dst []byte) ([]byte, error) {
	pc, err := parseContainer(r)
	if err != nil {
		return dst, err
	}

	var addRegion uint64
	for _, a := range pc.Adds {
		addRegion += uint64(a)
	}
	D := len(pc.Positions)
	for i := 1; i < D; i++ {
		if pc.Positions[i] <= pc.Positions[i-1] {
			return dst, invalid("decode: delta positions not strictly increasing at %d", i)
		}
	}
	if D > 0 && uint64(pc.Positions[D-1]) >= addRegion {
		return dst, invalid("decode: delta position %d beyond add region %d", pc.Positions[D-1], addRegion)
	}

	litCursor := 0
	deltaIdx := 0
	var addBase uint64
	var ctrlBuf [controlBytes]byte
	for k := range pc.Adds {
		add, cp := pc.Adds[k], pc.Copies[k]
		bc := AehobakControl{Add: add, Copy: cp, Seek: pc.Seeks[k]}.ToBsdiff()
		bc.ControlBytes(ctrlBuf[:])
		dst = append(dst, ctrlBuf[:]...)

		addBytes := make([]byte, add)
		for deltaIdx < D && uint64(pc.Positions[deltaIdx]) < addBase+uint64(add) {
			local := uint64(pc.Positions[deltaIdx]) - addBase
			addBytes[local] = pc.DeltaDiffs[deltaIdx]
			deltaIdx++
		}
		dst = append(dst, addBytes...)
		addBase += uint64(add)

		if int(cp) > len(pc.Literals)-litCursor {
			return dst, invalid("decode: copy region exceeds literals for control %d", k)
		}
		dst = append(dst, pc.Literals[litCursor:litCursor+int(cp)]...)
		litCursor += int(cp)
	}
	if deltaIdx != D {
		return dst, invalid("decode: %d leftover delta entries", D-deltaIdx)
	}
	if litCursor != len(pc.Literals) {
		return dst, invalid("decode: %d leftover literal bytes", len(pc.Literals)-litCursor)
	}

	return dst, nil
}
