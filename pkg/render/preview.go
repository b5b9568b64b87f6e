// Package render draws a PNG preview of a transform: the original mesh in
// light gray, the shrunk grains in blue, and the synthesized junction-fill
// triangles in red.
package render

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/gogpu/gg"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
	"github.com/Mote3D/PhaceXL-2D/pkg/shrink"
)

// preview colors, loosely after the part palette of the reference viewer.
var (
	colorOriginal = gg.Hex("#C8C8C8")
	colorShrunk   = gg.Hex("#4A90D9")
	colorFill     = gg.Hex("#E74C3C")
)

const previewMargin = 20.0

// Preview renders the transform to a PNG file. Width is the image width in
// pixels; the height follows the mesh aspect ratio.
func Preview(m *mesh.Mesh, res *shrink.Result, width int, path string) error {
	min, max := m.Bounds()
	spanX := max.X - min.X
	spanY := max.Y - min.Y
	if spanX <= 0 || spanY <= 0 {
		return fmt.Errorf("render: mesh has no area to draw")
	}

	scale := (float64(width) - 2*previewMargin) / spanX
	height := int(spanY*scale + 2*previewMargin)

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.RGB(1, 1, 1))
	dc.SetLineWidth(1)

	// Image y grows downward; mesh y grows upward.
	toImage := func(p v2.Vec) (float64, float64) {
		return previewMargin + (p.X-min.X)*scale, float64(height) - previewMargin - (p.Y-min.Y)*scale
	}

	stroke := func(nodes *mesh.NodeTable, tri mesh.Triangle) error {
		for i, n := range tri.Nodes {
			p, ok := nodes.Get(n)
			if !ok {
				return fmt.Errorf("render: triangle %d references unknown node %d", tri.ID, n)
			}
			x, y := toImage(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		return dc.Stroke()
	}

	dc.SetColor(colorOriginal.Color())
	for _, tri := range m.Triangles {
		if err := stroke(m.Nodes, tri); err != nil {
			return err
		}
	}

	dc.SetColor(colorShrunk.Color())
	for _, tri := range m.Triangles {
		if err := stroke(res.Nodes, tri); err != nil {
			return err
		}
	}

	dc.SetColor(colorFill.Color())
	for _, tri := range res.NewTriangles {
		if err := stroke(res.Nodes, tri); err != nil {
			return err
		}
	}

	return dc.SavePNG(path)
}
