package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/piwi3910/panelcut/internal/geom"
	"github.com/piwi3910/panelcut/internal/kernel"
)

// svgPadding is the margin around the geometry in drawing units.
const svgPadding = 10.0

// ExportSVG writes a preview of the face as a single path with even-odd
// fill, so the holes render as empty regions. The Y axis is flipped to
// match screen coordinates.
func ExportSVG(path string, face *kernel.Face) error {
	svg, err := RenderSVG(face)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

// RenderSVG returns the SVG document as a string.
func RenderSVG(face *kernel.Face) (string, error) {
	if face == nil || len(face.Outer) < 3 {
		return "", fmt.Errorf("no face to render")
	}

	min, max := face.BoundingBox()
	w := max.X - min.X
	h := max.Y - min.Y

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.3f %.3f %.3f %.3f">`+"\n",
		min.X-svgPadding, -(max.Y + svgPadding), w+2*svgPadding, h+2*svgPadding)

	b.WriteString(`  <path fill-rule="evenodd" fill="#d2b48c" stroke="#333" stroke-width="1" d="`)
	writePathData(&b, face.Outer)
	for _, hole := range face.Holes {
		b.WriteString(" ")
		writePathData(&b, hole)
	}
	b.WriteString("\"/>\n</svg>\n")
	return b.String(), nil
}

// writePathData emits one closed subpath with the Y axis negated.
func writePathData(b *strings.Builder, wire geom.Outline) {
	for i, p := range wire {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(b, "%s%.3f %.3f ", cmd, p.X, -p.Y)
	}
	b.WriteString("Z")
}
