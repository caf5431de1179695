package kernel

import (
	"fmt"
	"sort"

	polyclip "github.com/ctessum/polyclip-go"

	"github.com/piwi3910/panelcut/internal/brep"
	"github.com/piwi3910/panelcut/internal/geom"
)

// Planar is the concrete kernel for planar polygonal geometry. Boolean
// operations are delegated to the polyclip sweep-line implementation.
type Planar struct {
	// Tolerance is the distance below which points are considered equal.
	Tolerance float64
	// MinArea is the area below which a wire is considered degenerate.
	MinArea float64
	// SelfCheckLimit caps the vertex count for the pairwise
	// self-intersection test during validation.
	SelfCheckLimit int
}

// NewPlanar returns a planar kernel with default tolerances.
func NewPlanar() *Planar {
	return &Planar{
		Tolerance:      1e-7,
		MinArea:        1e-6,
		SelfCheckLimit: 256,
	}
}

// BuildFace constructs a face from an outer wire and optional holes.
// The outer wire must wind counter-clockwise, holes clockwise, and every
// hole must lie inside the outer boundary.
func (k *Planar) BuildFace(outer geom.Outline, holes ...geom.Outline) (*Face, error) {
	o := outer.DedupConsecutive(k.Tolerance)
	if err := k.checkWire(o, "outer wire"); err != nil {
		return nil, err
	}
	if !o.IsCCW() {
		return nil, &InvalidGeometryError{Reason: "outer wire is not counter-clockwise"}
	}

	face := &Face{Outer: o}
	for i, h := range holes {
		hw := h.DedupConsecutive(k.Tolerance)
		name := fmt.Sprintf("hole wire %d", i+1)
		if err := k.checkWire(hw, name); err != nil {
			return nil, err
		}
		if hw.IsCCW() {
			return nil, &InvalidGeometryError{Reason: name + " is not reversed (clockwise)"}
		}
		for _, p := range hw {
			if !o.Contains(p) {
				return nil, &InvalidGeometryError{Reason: name + " is not contained in the outer boundary"}
			}
		}
		// Vertex containment alone misses edges that cross a concave
		// void of the outer wire, or another hole.
		if len(hw)+len(o) <= 2*k.SelfCheckLimit && wiresCross(hw, o) {
			return nil, &InvalidGeometryError{Reason: name + " crosses the outer boundary"}
		}
		for j, prev := range face.Holes {
			if len(hw)+len(prev) <= 2*k.SelfCheckLimit && wiresCross(hw, prev) {
				return nil, &InvalidGeometryError{Reason: fmt.Sprintf("%s crosses hole wire %d", name, j+1)}
			}
		}
		face.Holes = append(face.Holes, hw)
	}
	return face, nil
}

// Validate checks topological validity: closed non-degenerate wires,
// canonical orientations, hole containment, and (for small wires)
// self-intersection.
func (k *Planar) Validate(f *Face) error {
	if f == nil {
		return &InvalidGeometryError{Reason: "nil face"}
	}
	if _, err := k.BuildFace(f.Outer, f.Holes...); err != nil {
		return err
	}
	for i, w := range f.Wires() {
		if len(w) <= k.SelfCheckLimit && selfIntersects(w) {
			return &InvalidGeometryError{Reason: fmt.Sprintf("wire %d is self-intersecting", i+1)}
		}
	}
	return nil
}

// FixOrientation restores canonical winding: outer counter-clockwise,
// holes clockwise. Wire geometry is otherwise untouched.
func (k *Planar) FixOrientation(f *Face) (*Face, error) {
	if f == nil || len(f.Outer) < 3 {
		return nil, &InvalidGeometryError{Reason: "no outer boundary to orient"}
	}
	fixed := &Face{Outer: f.Outer}
	if !fixed.Outer.IsCCW() {
		fixed.Outer = fixed.Outer.Reverse()
	}
	for _, h := range f.Holes {
		if h.IsCCW() {
			h = h.Reverse()
		}
		fixed.Holes = append(fixed.Holes, h)
	}
	return fixed, nil
}

// Area returns the enclosed area: outer minus holes.
func (k *Planar) Area(f *Face) float64 {
	if f == nil {
		return 0
	}
	area := f.Outer.Area()
	for _, h := range f.Holes {
		area -= h.Area()
	}
	return area
}

// Subtract computes base minus tool via polygon clipping. The clipping
// library reports pathological input by panicking; that surfaces here as
// ErrBooleanFailed, as does an empty result.
func (k *Planar) Subtract(base, tool *Face) (faces []*Face, err error) {
	defer func() {
		if r := recover(); r != nil {
			faces = nil
			err = fmt.Errorf("%w: %v", ErrBooleanFailed, r)
		}
	}()

	result := toPolygon(base).Construct(polyclip.DIFFERENCE, toPolygon(tool))
	faces = k.facesFromContours(result)
	if len(faces) == 0 {
		return nil, fmt.Errorf("%w: empty result", ErrBooleanFailed)
	}
	return faces, nil
}

// ReadBREP loads a stored face. The first wire is the outer boundary;
// remaining wires become holes. Winding is normalized on load.
func (k *Planar) ReadBREP(path string) (*Face, error) {
	doc, err := brep.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(doc.Wires) == 0 {
		return nil, &InvalidGeometryError{Reason: "document contains no wires"}
	}

	outer := doc.Wires[0].Points
	if !outer.IsCCW() {
		outer = outer.Reverse()
	}
	holes := make([]geom.Outline, 0, len(doc.Wires)-1)
	for _, w := range doc.Wires[1:] {
		h := w.Points
		if h.IsCCW() {
			h = h.Reverse()
		}
		holes = append(holes, h)
	}
	return k.BuildFace(outer, holes...)
}

// WriteBREP serializes the face, outer wire first, holes flagged reversed.
func (k *Planar) WriteBREP(f *Face, path string) error {
	if err := k.Validate(f); err != nil {
		return err
	}
	doc := &brep.Document{
		Wires: []brep.Wire{{Reversed: false, Points: f.Outer}},
	}
	for _, h := range f.Holes {
		doc.Wires = append(doc.Wires, brep.Wire{Reversed: true, Points: h})
	}
	return brep.WriteFile(path, doc)
}

// ---------- helpers ----------

func (k *Planar) checkWire(w geom.Outline, name string) error {
	if len(w) < 3 {
		return &InvalidGeometryError{Reason: name + " has fewer than 3 points"}
	}
	if w.Area() <= k.MinArea {
		return &InvalidGeometryError{Reason: name + " encloses no area"}
	}
	return nil
}

func toPolygon(f *Face) polyclip.Polygon {
	poly := make(polyclip.Polygon, 0, 1+len(f.Holes))
	poly = append(poly, toContour(f.Outer))
	for _, h := range f.Holes {
		poly = append(poly, toContour(h))
	}
	return poly
}

func toContour(o geom.Outline) polyclip.Contour {
	c := make(polyclip.Contour, len(o))
	for i, p := range o {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}

// facesFromContours groups raw clip-result contours into faces. Contours at
// even containment depth are outer boundaries; odd-depth contours become
// holes of the smallest outer that contains them.
func (k *Planar) facesFromContours(poly polyclip.Polygon) []*Face {
	var outlines []geom.Outline
	for _, c := range poly {
		o := make(geom.Outline, len(c))
		for i, p := range c {
			o[i] = geom.Point2D{X: p.X, Y: p.Y}
		}
		o = o.DedupConsecutive(k.Tolerance)
		if len(o) >= 3 && o.Area() > k.MinArea {
			outlines = append(outlines, o)
		}
	}
	if len(outlines) == 0 {
		return nil
	}

	reps := make([]geom.Point2D, len(outlines))
	depths := make([]int, len(outlines))
	for i, o := range outlines {
		reps[i] = interiorPoint(o)
		for j, other := range outlines {
			if i != j && other.Contains(reps[i]) {
				depths[i]++
			}
		}
	}

	faceByOutline := make(map[int]*Face)
	var order []int
	for i, o := range outlines {
		if depths[i]%2 == 0 {
			if !o.IsCCW() {
				o = o.Reverse()
			}
			faceByOutline[i] = &Face{Outer: o}
			order = append(order, i)
		}
	}

	for i, o := range outlines {
		if depths[i]%2 == 0 {
			continue
		}
		parent := -1
		parentArea := 0.0
		for _, j := range order {
			if outlines[j].Contains(reps[i]) {
				a := outlines[j].Area()
				if parent == -1 || a < parentArea {
					parent = j
					parentArea = a
				}
			}
		}
		if parent == -1 {
			continue // orphan sliver, drop
		}
		if o.IsCCW() {
			o = o.Reverse()
		}
		faceByOutline[parent].Holes = append(faceByOutline[parent].Holes, o)
	}

	faces := make([]*Face, 0, len(order))
	for _, i := range order {
		faces = append(faces, faceByOutline[i])
	}
	// Largest first for deterministic downstream selection.
	sort.SliceStable(faces, func(a, b int) bool {
		return k.Area(faces[a]) > k.Area(faces[b])
	})
	return faces
}

// interiorPoint finds a point strictly inside the outline. The vertex
// centroid works for convex shapes; concave ones fall back to edge
// midpoints nudged along both perpendiculars.
func interiorPoint(o geom.Outline) geom.Point2D {
	c := geom.Point2D{}
	for _, p := range o {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(o))
	c.Y /= float64(len(o))
	if o.Contains(c) {
		return c
	}

	min, max := o.BoundingBox()
	eps := ((max.X - min.X) + (max.Y - min.Y)) * 1e-6
	if eps == 0 {
		eps = 1e-9
	}
	for i := range o {
		a := o[i]
		b := o[(i+1)%len(o)]
		mx, my := (a.X+b.X)/2, (a.Y+b.Y)/2
		dx, dy := b.X-a.X, b.Y-a.Y
		for _, sign := range []float64{1, -1} {
			p := geom.Point2D{X: mx - sign*dy*eps, Y: my + sign*dx*eps}
			if o.Contains(p) {
				return p
			}
		}
	}
	return c
}

// selfIntersects reports whether any two non-adjacent segments cross.
func selfIntersects(o geom.Outline) bool {
	n := len(o)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a1 := o[i]
		a2 := o[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // closing segment is adjacent to the first
			}
			b1 := o[j]
			b2 := o[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// wiresCross reports whether any segment of a properly crosses any
// segment of b.
func wiresCross(a, b geom.Outline) bool {
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		a1 := a[i]
		a2 := a[(i+1)%na]
		for j := 0; j < nb; j++ {
			if segmentsCross(a1, a2, b[j], b[(j+1)%nb]) {
				return true
			}
		}
	}
	return false
}

func segmentsCross(a1, a2, b1, b2 geom.Point2D) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(o, a, b geom.Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
