// Command spg is the SPG CLI: key generation, export, signing,
// verification, and file encryption/decryption over the curve registry
// in package curve (§5).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "spg:", err)
		os.Exit(1)
	}
}
