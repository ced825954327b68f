// Command aehobak-bench measures the compact container's size and
// round-trip behaviour for a given (old, new) file pair, and prints a
// reference comparison against github.com/mhr3/streamvbyte's plain
// StreamVByte codec on a synthetic integer sequence — a baseline for the
// group-varint stream codec, not a rival wire format (per SPEC_FULL.md's
// DOMAIN STACK table, no generic compression is layered onto the compact
// stream itself; this comparison lives entirely in this binary).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/aehobak/aehobak-go"
	"github.com/cespare/xxhash/v2"
	"github.com/mhr3/streamvbyte"
)

func main() {
	seed := flag.Int64("seed", 1, "seed for the synthetic streamvbyte baseline")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: aehobak-bench [-seed N] OLD NEW")
		os.Exit(2)
	}

	old, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-bench: %v\n", err)
		os.Exit(1)
	}
	newData, err := os.ReadFile(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-bench: %v\n", err)
		os.Exit(1)
	}

	var compact bytes.Buffer
	t0 := time.Now()
	if err := aehobak.Diff(old, newData, &compact); err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-bench: diff: %v\n", err)
		os.Exit(1)
	}
	diffTook := time.Since(t0)

	scratch := make([]byte, 0, len(newData)+64)
	t1 := time.Now()
	reconstructed, err := aehobak.Patch(old, compact.Bytes(), scratch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-bench: patch: %v\n", err)
		os.Exit(1)
	}
	patchTook := time.Since(t1)

	oldHash := xxhash.Sum64(old)
	newHash := xxhash.Sum64(newData)
	gotHash := xxhash.Sum64(reconstructed)

	fmt.Printf("old:          %8d bytes  (xxhash %016x)\n", len(old), oldHash)
	fmt.Printf("new:          %8d bytes  (xxhash %016x)\n", len(newData), newHash)
	fmt.Printf("compact:      %8d bytes  (%.2f%% of new)\n", compact.Len(), 100*float64(compact.Len())/float64(max(len(newData), 1)))
	fmt.Printf("reconstructed: %7d bytes  (xxhash %016x, match=%v)\n", len(reconstructed), gotHash, gotHash == newHash)
	fmt.Printf("diff:  %v\n", diffTook)
	fmt.Printf("patch: %v\n", patchTook)

	fmt.Println()
	fmt.Println("streamvbyte baseline on a synthetic skip-like uint32 sequence:")
	benchStreamVByte(*seed)
}

// benchStreamVByte encodes a synthetic sequence of small, skip-like uint32
// deltas with github.com/mhr3/streamvbyte and reports its size, giving a
// reference point for the group-varint codec's own size on similarly shaped
// data (most values small, occasional large outlier).
func benchStreamVByte(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	const n = 100_000
	values := make([]uint32, n)
	for i := range values {
		if rng.Intn(64) == 0 {
			values[i] = rng.Uint32()
			continue
		}
		values[i] = uint32(rng.Intn(256))
	}

	encoded := streamvbyte.EncodeUint32(values, nil)
	fmt.Printf("  %d values -> %d streamvbyte bytes (%.2f bytes/value)\n", n, len(encoded), float64(len(encoded))/float64(n))
}
