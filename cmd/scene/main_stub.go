//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of scene requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/scene` or build with `-tags ebiten`.")
	fmt.Fprintln(os.Stderr, "For a headless check of the scroll behaviour use `go run ./cmd/scroll-sweep`.")
	os.Exit(2)
}
