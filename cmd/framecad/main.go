// framecad — lumber cut-list to 3D geometry converter
//
// Reads tabular cut-lists (CSV or Excel), resolves nominal lumber sizes to
// real cross-sections, synthesizes a solid per board, and groups the solids
// by construction section. Also plans which stock boards to buy.
//
// Build:
//   go build -o framecad ./cmd/framecad

package main

import (
	"os"

	"github.com/woodshop-tools/framecad/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
