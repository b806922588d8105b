// Package export writes import results to shop-usable formats: DXF
// wireframes, PDF cut reports, and QR-coded part labels.
package export

import (
	"fmt"

	"github.com/woodshop-tools/framecad/internal/scene"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// layerColors cycles per section group in the DXF output.
var layerColors = []color.ColorNumber{
	color.Red,
	color.Green,
	color.Blue,
	color.Cyan,
	color.Magenta,
	color.Yellow,
}

// ExportDXF writes a 3D wireframe of every placed solid, one layer per
// section group. Each face edge becomes a LINE entity; shared edges are
// deduplicated per solid.
func ExportDXF(path string, doc *scene.MemDocument) error {
	if doc == nil || len(doc.Roots) == 0 {
		return fmt.Errorf("no placed objects to export")
	}

	d := dxf.NewDrawing()

	for i, root := range doc.Roots {
		layer := scene.SanitizeName(root.Name())
		if _, err := d.AddLayer(layer, layerColors[i%len(layerColors)], dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %q: %w", layer, err)
		}

		sub := scene.MemDocument{Roots: []*scene.MemNode{root}}
		var wireErr error
		sub.WalkSolids(func(n *scene.MemNode) {
			if wireErr != nil || n.Solid == nil {
				return
			}
			if err := writeWireframe(d, n); err != nil {
				wireErr = err
			}
		})
		if wireErr != nil {
			return wireErr
		}
	}

	return d.SaveAs(path)
}

// writeWireframe emits each distinct edge of the solid as a LINE.
func writeWireframe(d *drawing.Drawing, n *scene.MemNode) error {
	type key [6]int64
	quant := func(v float64) int64 { return int64(v * 1e6) }
	seen := map[key]bool{}

	for _, face := range n.Solid.Faces {
		for i := range face {
			a := face[i]
			b := face[(i+1)%len(face)]
			k := key{quant(a.X), quant(a.Y), quant(a.Z), quant(b.X), quant(b.Y), quant(b.Z)}
			rk := key{k[3], k[4], k[5], k[0], k[1], k[2]}
			if seen[k] || seen[rk] {
				continue
			}
			seen[k] = true
			if _, err := d.Line(a.X, a.Y, a.Z, b.X, b.Y, b.Z); err != nil {
				return fmt.Errorf("failed to write edge for %q: %w", n.Name(), err)
			}
		}
	}
	return nil
}
