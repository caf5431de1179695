// Package kernel defines the geometry-kernel capability interface the panel
// pipeline is written against, plus the planar polygon implementation that
// backs it. The pipeline only ever talks to the Kernel interface so it can
// be exercised against a different backend in tests.
package kernel

import (
	"errors"
	"fmt"

	"github.com/piwi3910/panelcut/internal/geom"
)

// ErrBooleanFailed reports a boolean operation that did not complete.
// Callers treat it as "no-op, keep prior state".
var ErrBooleanFailed = errors.New("boolean operation failed")

// InvalidGeometryError reports a shape that fails topological validation.
type InvalidGeometryError struct {
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

// Face is a bounded planar region: one outer wire and zero or more holes.
// Canonical orientation is outer counter-clockwise, holes clockwise.
type Face struct {
	Outer geom.Outline
	Holes []geom.Outline
}

// Wires returns all boundary wires, outer first.
func (f *Face) Wires() []geom.Outline {
	wires := make([]geom.Outline, 0, 1+len(f.Holes))
	wires = append(wires, f.Outer)
	wires = append(wires, f.Holes...)
	return wires
}

// BoundingBox returns the min and max corners of the outer boundary.
func (f *Face) BoundingBox() (min, max geom.Point2D) {
	return f.Outer.BoundingBox()
}

// Kernel is the capability interface over the underlying geometry engine.
type Kernel interface {
	// BuildFace constructs a face from an outer wire and optional hole
	// wires, enforcing the canonical orientation and containment rules.
	BuildFace(outer geom.Outline, holes ...geom.Outline) (*Face, error)

	// Subtract computes base minus tool. The result may fragment into
	// several disjoint faces. A failed operation returns ErrBooleanFailed.
	Subtract(base, tool *Face) ([]*Face, error)

	// Validate checks the face's topological validity.
	Validate(f *Face) error

	// FixOrientation returns a copy of the face with canonical wire
	// orientations restored.
	FixOrientation(f *Face) (*Face, error)

	// Area returns the enclosed surface area (outer minus holes).
	Area(f *Face) float64

	// ReadBREP loads a face from a stored boundary-representation file.
	ReadBREP(path string) (*Face, error)

	// WriteBREP serializes the face to a boundary-representation file.
	WriteBREP(f *Face, path string) error
}
