// Command aehobak-diff builds the compact delta form for an (old, new) file
// pair directly, without going through a classical bsdiff step.
//
// A CLI front end is explicitly out of scope for the codec itself (see
// SPEC_FULL.md's CLI front ends section); this binary is the "external collaborator"
// the spec describes, kept thin on purpose.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aehobak/aehobak-go"
)

func main() {
	flag.Parse()

	if flag.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "usage: aehobak-diff OLD NEW PATCH-OUT")
		os.Exit(2)
	}
	oldPath, newPath, outPath := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	old, err := os.ReadFile(oldPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-diff: %v\n", err)
		os.Exit(1)
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-diff: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-diff: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := aehobak.Diff(old, newData, out); err != nil {
		fmt.Fprintf(os.Stderr, "aehobak-diff: %v\n", err)
		os.Exit(1)
	}
}
