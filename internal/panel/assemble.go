package panel

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/panelcut/internal/kernel"
)

// Build assembles the final panel face: edge cuts are applied to the outer
// boundary in order, then all registered holes are attached in one step.
// If hole attachment fails, every hole is dropped and the build continues
// with the cut outline alone. Orientation is repaired best-effort. The only
// fatal outcome is a face that fails final validation.
func (p *Panel) Build() (*kernel.Face, *BuildReport, error) {
	outer := p.baseRectWire()
	if len(p.edgeCuts) > 0 {
		outer = p.outerWireAfterCuts()
	}

	face, err := p.kern.BuildFace(outer, p.innerWires...)
	if err != nil {
		// All-or-nothing: one bad hole drops them all.
		if len(p.innerWires) > 0 {
			p.diag(StageHoles, "", fmt.Sprintf("dropping all %d holes: %v", len(p.innerWires), err))
			face, err = p.kern.BuildFace(outer)
		}
		if err != nil {
			return nil, p.reportSnapshot(0), fmt.Errorf("panel face construction failed: %w", err)
		}
	}

	fixed, err := p.kern.FixOrientation(face)
	if err != nil {
		p.diag(StageOrientation, "", fmt.Sprintf("orientation fix failed, keeping face as built: %v", err))
	} else {
		face = fixed
	}

	if err := p.kern.Validate(face); err != nil {
		return nil, p.reportSnapshot(len(face.Holes)),
			fmt.Errorf("final panel face is invalid: %w", err)
	}

	report := p.reportSnapshot(len(face.Holes))
	p.log.Info("panel built",
		zap.Float64("width", p.Width),
		zap.Float64("height", p.Height),
		zap.Int("edge_cuts", report.EdgeCuts),
		zap.Int("holes", report.Holes),
		zap.Int("diagnostics", len(report.Diagnostics)),
		zap.Float64("area", p.kern.Area(face)))
	return face, report, nil
}
