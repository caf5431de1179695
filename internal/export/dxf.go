// Package export writes finished panel faces to interchange and
// documentation formats: DXF for CAM, SVG for previews, PDF cut sheets.
package export

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/panelcut/internal/geom"
	"github.com/piwi3910/panelcut/internal/kernel"
)

// DXF layer names. The outer boundary and the holes land on separate
// layers so CAM tooling can assign different operations to each.
const (
	layerPanel = "PANEL"
	layerHoles = "HOLES"
)

// ExportDXF writes the face as closed LWPOLYLINEs, outer boundary on the
// PANEL layer and holes on the HOLES layer.
func ExportDXF(path string, face *kernel.Face) error {
	if face == nil || len(face.Outer) < 3 {
		return fmt.Errorf("no face to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerPanel, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("dxf layer %s: %w", layerPanel, err)
	}
	if err := addPolyline(d, face.Outer.DedupConsecutive(1e-9)); err != nil {
		return err
	}

	if len(face.Holes) > 0 {
		if _, err := d.AddLayer(layerHoles, dxfcolor.Red, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("dxf layer %s: %w", layerHoles, err)
		}
		for _, h := range face.Holes {
			if err := addPolyline(d, h.DedupConsecutive(1e-9)); err != nil {
				return err
			}
		}
	}

	return d.SaveAs(path)
}

func addPolyline(d *drawing.Drawing, wire geom.Outline) error {
	if len(wire) < 3 {
		return fmt.Errorf("wire has fewer than 3 points")
	}
	vertices := make([][]float64, len(wire))
	for i, p := range wire {
		vertices[i] = []float64{p.X, p.Y}
	}
	if _, err := d.LwPolyline(true, vertices...); err != nil {
		return fmt.Errorf("dxf polyline: %w", err)
	}
	return nil
}
