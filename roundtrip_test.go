package aehobak

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bsdiffTriple struct {
	addBytes, copyBytes []byte
	seek                int64
}

func buildBsdiffStream(triples []bsdiffTriple) []byte {
	var buf bytes.Buffer
	for _, tr := range triples {
		c := BsdiffControl{Add: uint64(len(tr.addBytes)), Copy: uint64(len(tr.copyBytes)), Seek: tr.seek}
		var cb [controlBytes]byte
		c.ControlBytes(cb[:])
		buf.Write(cb[:])
		buf.Write(tr.addBytes)
		buf.Write(tr.copyBytes)
	}
	return buf.Bytes()
}

// applyBsdiffStream is a minimal, test-only classical bsdiff applier
// grounded on other_examples' bspatch.go (offtin/patchb): each control adds
// diff bytes onto the corresponding old bytes, then appends literal copy
// bytes, then seeks. It exists purely to cross-check Decode's output
// independently of Patch, never to serve as a second production path.
func applyBsdiffStream(t *testing.T, old, stream []byte) []byte {
	t.Helper()
	var out []byte
	oldPos, pos := 0, 0
	for pos < len(stream) {
		c, err := ParseControlBytes(stream[pos:])
		require.NoError(t, err)
		pos += controlBytes

		addBytes := stream[pos : pos+int(c.Add)]
		pos += int(c.Add)
		for i, b := range addBytes {
			out = append(out, old[oldPos+i]+b)
		}
		oldPos += int(c.Add)

		copyBytes := stream[pos : pos+int(c.Copy)]
		pos += int(c.Copy)
		out = append(out, copyBytes...)

		oldPos += int(c.Seek)
	}
	return out
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	stream := buildBsdiffStream([]bsdiffTriple{
		{addBytes: []byte{0, 0, 5, 0}, copyBytes: []byte("hello"), seek: 4},
		{addBytes: nil, copyBytes: []byte("world"), seek: -2},
		{addBytes: []byte{1, 2, 3}, copyBytes: nil, seek: 0},
	})

	var buf bytes.Buffer
	require.NoError(t, Encode(stream, &buf))

	got, err := Decode(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, stream, got)
}

func TestEncodeTruncatedStream(t *testing.T) {
	stream := buildBsdiffStream([]bsdiffTriple{{addBytes: []byte{1, 2, 3}, copyBytes: []byte("xy")}})
	var buf bytes.Buffer
	err := Encode(stream[:len(stream)-1], &buf)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestDiffPatchRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	cases := []struct {
		name     string
		old, new []byte
	}{
		{"empty both", nil, nil},
		{"empty old", nil, []byte("brand new content")},
		{"identical", []byte("the quick brown fox"), []byte("the quick brown fox")},
		{"shared middle", []byte("AAAAthe quick brown foxBBBB"), []byte("CCCCthe quick brown foxDDDD")},
		{"shuffled blocks", shuffleBlocks(rng, 4096, 64), nil},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			old, new := c.old, c.new
			if new == nil && c.name == "shuffled blocks" {
				new = shuffleBlocks(rng, len(old), 64)
			}

			var compact bytes.Buffer
			require.NoError(t, Diff(old, new, &compact))

			scratch := make([]byte, 0, len(new)+16)
			patched, err := Patch(old, compact.Bytes(), scratch)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(new, patched), "patch mismatch: want %q got %q", new, patched)

			stream, err := Decode(bytes.NewReader(compact.Bytes()), nil)
			require.NoError(t, err)
			applied := applyBsdiffStream(t, old, stream)
			assert.True(t, bytes.Equal(new, applied), "decode+apply mismatch: want %q got %q", new, applied)
		})
	}
}

// shuffleBlocks builds a buffer out of random fixed-size blocks drawn from
// a small shared pool, so old/new share long common substrings in varying
// order — the shape the greedy matcher is meant to exploit.
func shuffleBlocks(rng *rand.Rand, total, block int) []byte {
	pool := make([][]byte, 8)
	for i := range pool {
		b := make([]byte, block)
		rng.Read(b)
		pool[i] = b
	}
	out := make([]byte, 0, total)
	for len(out) < total {
		out = append(out, pool[rng.Intn(len(pool))]...)
	}
	return out[:total]
}

// TestSingleDeltaVector covers spec §8's concrete "old = [0;N], new = old
// with new[k] += 1" vector through Diff, checking that Patch and
// Decode+apply both reproduce new. It does not check the control sequence
// Diff emits, which need not be the single (add = N, copy = 0, seek = 0)
// control a classical bsdiff produces: for N = 1 Diff emits add = 0,
// copy = 1, and for larger N its seek is -1. The 524288-byte case is the spec's
// stated canonical end-to-end performance/compatibility benchmark size;
// the exact fixture bytes embedded in the original Rust repository are not
// present anywhere in the retrieved corpus, so this exercises the vector
// spec §8 actually specifies (zero-filled old, single-bit delta) at that
// same size rather than fabricating unsourced fixture content.
func TestSingleDeltaVector(t *testing.T) {
	sizes := []int{1, 17, 524288}
	for _, n := range sizes {
		n := n
		t.Run(sizeLabel(n), func(t *testing.T) {
			old := make([]byte, n)
			newData := make([]byte, n)
			copy(newData, old)
			k := n / 2
			newData[k]++

			var compact bytes.Buffer
			require.NoError(t, Diff(old, newData, &compact))

			scratch := make([]byte, 0, n+16)
			patched, err := Patch(old, compact.Bytes(), scratch)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(newData, patched))

			stream, err := Decode(bytes.NewReader(compact.Bytes()), nil)
			require.NoError(t, err)
			applied := applyBsdiffStream(t, old, stream)
			assert.True(t, bytes.Equal(newData, applied))
		})
	}
}

func sizeLabel(n int) string {
	if n == 524288 {
		return "524288 (canonical)"
	}
	return fmt.Sprintf("n=%d", n)
}

func TestPatchCapacityExceeded(t *testing.T) {
	old := []byte("hello world")
	new := []byte("hello there, a much longer world than before")
	var compact bytes.Buffer
	require.NoError(t, Diff(old, new, &compact))

	scratch := make([]byte, 0, 4)
	_, err := Patch(old, compact.Bytes(), scratch)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestDiffInputTooLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("requires allocating a >2GiB buffer")
	}
	old := make([]byte, maxInt32+1)
	err := Diff(old, []byte("x"), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalidData)
}
