// Command aehobak-patch applies a compact container produced by
// aehobak-diff (or by aehobak.Encode on a classical bsdiff stream) directly
// to an old file, reconstructing new without ever materializing the
// intermediate bsdiff control stream.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aehobak/aehobak-go"
)

func main() {
	maxNew := flag.Int("max-new", 1<<30, "maximum size in bytes the reconstructed file may grow to")
	flag.Parse()

	if flag.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "usage: aehobak-patch [-max-new N] OLD PATCH NEW-OUT")
		os.Exit(2)
	}
	oldPath, deltaPath, outPath := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	old, err := os.ReadFile(oldPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-patch: %v\n", err)
		os.Exit(1)
	}
	compact, err := os.ReadFile(deltaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-patch: %v\n", err)
		os.Exit(1)
	}

	scratch := make([]byte, 0, *maxNew)
	newData, err := aehobak.Patch(old, compact, scratch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-patch: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, newData, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-patch: %v\n", err)
		os.Exit(1)
	}
}
