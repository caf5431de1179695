// Package geom provides the 2D primitives shared by the panel pipeline:
// points, closed outlines, bounding boxes, and planar transforms.
// All coordinates are in mm, Y-up.
package geom

import "math"

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Center returns the center of the outline's bounding box.
func (o Outline) Center() Point2D {
	min, max := o.BoundingBox()
	return Point2D{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2}
}

// Width returns the bounding-box width.
func (o Outline) Width() float64 {
	min, max := o.BoundingBox()
	return max.X - min.X
}

// Height returns the bounding-box height.
func (o Outline) Height() float64 {
	min, max := o.BoundingBox()
	return max.Y - min.Y
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// RotateAbout rotates all points by angleDeg (counter-clockwise) around (cx, cy).
func (o Outline) RotateAbout(cx, cy, angleDeg float64) Outline {
	if math.Abs(angleDeg) < 1e-12 {
		result := make(Outline, len(o))
		copy(result, o)
		return result
	}
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	result := make(Outline, len(o))
	for i, p := range o {
		dx := p.X - cx
		dy := p.Y - cy
		result[i] = Point2D{
			X: cx + dx*cos - dy*sin,
			Y: cy + dx*sin + dy*cos,
		}
	}
	return result
}

// Reverse returns the outline with its point order reversed, flipping the
// winding direction. Used to mark hole wires per the canonical orientation
// convention (outer CCW, holes CW).
func (o Outline) Reverse() Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[len(o)-1-i] = p
	}
	return result
}

// SignedArea computes the shoelace sum; positive for counter-clockwise winding.
func (o Outline) SignedArea() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return area / 2
}

// Area computes the absolute enclosed area.
func (o Outline) Area() float64 {
	return math.Abs(o.SignedArea())
}

// IsCCW reports whether the outline winds counter-clockwise.
func (o Outline) IsCCW() bool {
	return o.SignedArea() > 0
}

// DedupConsecutive removes consecutive points closer than tolerance,
// including a duplicate closing point.
func (o Outline) DedupConsecutive(tolerance float64) Outline {
	if len(o) == 0 {
		return nil
	}
	result := Outline{o[0]}
	for _, p := range o[1:] {
		if !PointsClose(result[len(result)-1], p, tolerance) {
			result = append(result, p)
		}
	}
	if len(result) > 1 && PointsClose(result[0], result[len(result)-1], tolerance) {
		result = result[:len(result)-1]
	}
	return result
}

// Contains reports whether p lies strictly inside the outline (ray casting).
func (o Outline) Contains(p Point2D) bool {
	n := len(o)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := o[i], o[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// PointsClose checks whether two points are within the given tolerance.
func PointsClose(a, b Point2D, tolerance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}

// Rect builds a counter-clockwise rectangular outline with its minimum
// corner at (x, y).
func Rect(x, y, w, h float64) Outline {
	return Outline{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
}
