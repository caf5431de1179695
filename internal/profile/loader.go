// Package profile loads stored planar profile boundaries for placement on
// a panel. Stored profiles come from the shape library's canonicalization
// step, but the loader stays tolerant of varied topology: a bare wire, a
// face with holes, or a single closed boundary all yield an outer wire.
package profile

import (
	"fmt"

	"github.com/piwi3910/panelcut/internal/brep"
	"github.com/piwi3910/panelcut/internal/geom"
	"github.com/piwi3910/panelcut/internal/kernel"
)

// Error reports a stored profile that cannot yield a usable closed boundary.
type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("profile %s: %s", e.Path, e.Reason)
}

// Load reads a stored profile and returns its outer wire, normalized to
// counter-clockwise winding. When the document holds several wires (a face
// with holes, or loose boundaries), the wire enclosing the largest area is
// selected as the outer boundary; ties keep the first seen.
func Load(k kernel.Kernel, path string) (geom.Outline, error) {
	doc, err := brep.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Reason: err.Error()}
	}
	return FromDocument(k, path, doc)
}

// FromDocument extracts the outer wire from an already-decoded document.
func FromDocument(k kernel.Kernel, path string, doc *brep.Document) (geom.Outline, error) {
	if len(doc.Wires) == 0 {
		return nil, &Error{Path: path, Reason: "document contains no wires"}
	}

	var best geom.Outline
	bestArea := -1.0
	for _, w := range doc.Wires {
		candidate := w.Points.DedupConsecutive(1e-7)
		if len(candidate) < 3 {
			continue
		}
		if !candidate.IsCCW() {
			candidate = candidate.Reverse()
		}
		// A temporary face build both normalizes the wire and proves
		// it encloses a usable region; unusable wires are skipped.
		face, err := k.BuildFace(candidate)
		if err != nil {
			continue
		}
		if area := k.Area(face); area > bestArea {
			bestArea = area
			best = face.Outer
		}
	}
	if best == nil {
		return nil, &Error{Path: path, Reason: "no usable closed boundary found"}
	}
	return best, nil
}
