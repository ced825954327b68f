package aehobak

import (
	"io"

	"github.com/aehobak/aehobak-go/internal/suffixarray"
)

// Diff builds the compact container directly from old and newData, without
// ever materializing the classic bsdiff control stream (spec §4.7). It is a
// suffix-array-backed greedy matcher translated from bsdiff's own
// search-and-extend loop.
//
// Grounded on original_source/src/diff.rs's diff_internal/find_best_match/
// ScanState. libsais16's suffix array there (built over old with an appended
// sentinel byte smaller than every real byte) is replaced here by
// internal/suffixarray's prefix-doubling sort, the only suffix array
// construction anywhere in the retrieved corpus.
//
// Experimental in the same sense as the original: preconditions (old fitting
// in u32 length, matched regions never exceeding buffer bounds) are the
// algorithm's own invariants rather than checks made at every step, so a
// caller-supplied old/newData pair that somehow violates them panics rather
// than returning an error — spec §4.7 treats this as out of scope beyond
// the |old| <= 2^31-1 bound, which is enforced up front below.
func Diff(old, newData []byte, w io.Writer) error {
	if int64(len(old)) > maxInt32 {
		return ErrInputTooLarge
	}

	sa := suffixarray.Build(old)

	var st streams
	var addCursor, deltaCursor uint64

	scan, length, pos := 0, 0, 0
	lastScan, lastPos, lastOffset := 0, 0, 0

	for scan < len(newData) {
		oldScore := 0
		scan += length
		scsc := scan
		for scan < len(newData) {
			pos, length = findBestMatch(sa, old, newData[scan:])

			for scsc < scan+length {
				if scsc+lastOffset < len(old) && old[scsc+lastOffset] == newData[scsc] {
					oldScore++
				}
				scsc++
			}

			if (length == oldScore && length != 0) || length > oldScore+8 {
				break
			}
			if scan+lastOffset < len(old) && old[scan+lastOffset] == newData[scan] {
				oldScore--
			}
			scan++
		}

		if length == oldScore && scan != len(newData) {
			continue
		}

		add := 0
		{
			score, best := 0, 0
			i := 0
			for lastScan+i < scan && lastPos+i < len(old) {
				if old[lastPos+i] == newData[lastScan+i] {
					score++
				}
				i++
				if score*2-i <= best*2-add {
					continue
				}
				best = score
				add = i
			}
		}

		lenB := 0
		if scan < len(newData) {
			score, best := 0, 0
			i := 1
			for scan >= lastScan+i && pos >= i {
				if old[pos-i] == newData[scan-i] {
					score++
				}
				if score*2-i > best*2-lenB {
					best = score
					lenB = i
				}
				i++
			}
		}

		if lastScan+add > scan-lenB {
			overlap := lastScan + add - (scan - lenB)
			score, best, lens := 0, 0, 0
			for i := 0; i < overlap; i++ {
				if newData[lastScan+add-overlap+i] == old[lastPos+add-overlap+i] {
					score++
				}
				if newData[scan-lenB+i] == old[pos-lenB+i] {
					score--
				}
				if score > best {
					best = score
					lens = i + 1
				}
			}
			add = add + lens - overlap
			lenB -= lens
		}

		copyLen := scan - lenB - (lastScan + add)
		seek := (pos - lastPos) - (lenB + add)

		if uint64(add) > maxUint32 || uint64(copyLen) > maxUint32 {
			return invalid("diff: add/copy length overflows u32")
		}
		if int64(seek) > maxInt32 || int64(seek) < minInt32 {
			return invalid("diff: seek %d overflows i32", seek)
		}

		st.adds = append(st.adds, uint32(add))
		st.copies = append(st.copies, uint32(copyLen))
		st.seeksZZ = append(st.seeksZZ, zigzagEncode32(int32(seek)))

		addOld := old[lastPos:][:add]
		addNew := newData[lastScan:][:add]
		for i := 0; i < add; i++ {
			d := addNew[i] - addOld[i]
			if d == 0 {
				continue
			}
			skip := addCursor + uint64(i) - deltaCursor
			st.skips = append(st.skips, uint32(skip))
			st.deltaDiffs = append(st.deltaDiffs, d)
			deltaCursor = addCursor + uint64(i) + 1
		}
		addCursor += uint64(add)

		copyFrom := lastScan + add
		st.literals = append(st.literals, newData[copyFrom:][:copyLen]...)

		lastScan = scan - lenB
		lastPos = pos - lenB
		lastOffset = pos - scan
	}

	return writeContainer(w, &st)
}

// findBestMatch narrows sa (a suffix array over old, as returned by
// internal/suffixarray.Build) by repeated binary halving down to two
// adjacent entries, then returns whichever of those two shares the longer
// common prefix with prefix — the same narrowing bsdiff's own "search"
// performs, written as a loop rather than recursion. The result is not
// always the longest match in old: a suffix that agrees with prefix over
// its whole compared length does not count as less, so the search moves
// left (on an all-zero old it settles on the one-byte suffix).
func findBestMatch(sa []int32, old, prefix []byte) (bestPos, bestLen int) {
	for len(sa) > 2 {
		mid := (len(sa) - 1) / 2
		cand := old[sa[mid]:]
		n := len(cand)
		if n > len(prefix) {
			n = len(prefix)
		}
		if bytesLess(cand[:n], prefix[:n]) {
			sa = sa[mid:]
		} else {
			sa = sa[:mid+1]
		}
	}

	a := mismatchLen(old[sa[0]:], prefix)
	b := mismatchLen(old[sa[len(sa)-1]:], prefix)
	if a > b {
		return int(sa[0]), a
	}
	return int(sa[len(sa)-1]), b
}

// mismatchLen returns the length of the common prefix of a and b.
func mismatchLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func bytesLess(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
