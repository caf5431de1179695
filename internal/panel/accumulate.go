package panel

import (
	"fmt"

	"github.com/piwi3910/panelcut/internal/geom"
	"github.com/piwi3910/panelcut/internal/kernel"
)

// outerWireAfterCuts applies the scheduled edge cuts to the base rectangle
// in placement order and returns the resulting outer boundary. Each cut
// operates on the result of the previous one, so overlapping cuts are
// order-sensitive by design.
//
// Failure policy per cut: a boolean that does not report success skips
// that cut and keeps the prior face. A successful boolean may fragment the
// shape; only the largest-area face survives, discarding disconnected
// slivers. If no usable boundary remains at the end, the pristine
// rectangle is returned and the cuts are effectively discarded.
func (p *Panel) outerWireAfterCuts() geom.Outline {
	current, err := p.baseRectFace()
	if err != nil {
		// Not reachable for positive panel dimensions.
		p.diag(StageCut, "", fmt.Sprintf("base face construction failed: %v", err))
		return p.baseRectWire()
	}

	for i, cut := range p.edgeCuts {
		faces, err := p.kern.Subtract(current, cut)
		if err != nil {
			p.diag(StageCut, "", fmt.Sprintf("edge cut %d skipped, keeping prior boundary: %v", i+1, err))
			continue
		}
		largest := p.largestFace(faces)
		if largest == nil {
			p.diag(StageCut, "", fmt.Sprintf("edge cut %d produced no usable face, keeping prior boundary", i+1))
			continue
		}
		if len(faces) > 1 {
			p.diag(StageCut, "", fmt.Sprintf("edge cut %d fragmented the panel into %d regions, kept the largest", i+1, len(faces)))
		}
		current = largest
	}

	outer := p.largestWireByArea(current.Wires())
	if outer == nil {
		p.diag(StageCut, "", "no wires found after edge cuts, using pristine rectangle")
		return p.baseRectWire()
	}
	return outer
}

// largestFace returns the face with the largest enclosed area.
func (p *Panel) largestFace(faces []*kernel.Face) *kernel.Face {
	var best *kernel.Face
	bestArea := -1.0
	for _, f := range faces {
		if a := p.kern.Area(f); a > bestArea {
			bestArea = a
			best = f
		}
	}
	return best
}

// largestWireByArea selects the outer boundary from candidate wires by
// building a temporary face from each and comparing enclosed area. Ties
// keep the first seen. Wires that cannot form a face are skipped.
func (p *Panel) largestWireByArea(wires []geom.Outline) geom.Outline {
	var best geom.Outline
	bestArea := -1.0
	for _, w := range wires {
		candidate := w
		if !candidate.IsCCW() {
			candidate = candidate.Reverse()
		}
		face, err := p.kern.BuildFace(candidate)
		if err != nil {
			continue
		}
		if a := p.kern.Area(face); a > bestArea {
			bestArea = a
			best = face.Outer
		}
	}
	return best
}
