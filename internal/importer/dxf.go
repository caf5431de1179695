package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/panelcut/internal/geom"
)

// chainTolerance is the maximum endpoint gap when joining loose DXF
// segments into closed outlines.
const chainTolerance = 0.01

// segment is one line segment, used for chaining disconnected LINE and ARC
// entities into closed outlines.
type segment struct {
	start geom.Point2D
	end   geom.Point2D
}

// DXFResult holds the closed outlines extracted from a DXF drawing,
// normalized so each bounding box starts at (0, 0) and sorted largest first.
type DXFResult struct {
	Outlines []geom.Outline
	Errors   []string
	Warnings []string
}

// ImportDXF extracts profile outlines from a DXF file. Each closed shape
// (LWPOLYLINE, CIRCLE, or chain of connected LINEs/ARCs) becomes one
// outline suitable for library ingestion.
func ImportDXF(path string) DXFResult {
	result := DXFResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []geom.Outline
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, circleToOutline(e, 64))

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: geom.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   geom.Point2D{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	outlines = append(outlines, chainSegments(segments, chainTolerance)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for _, outline := range outlines {
		min, max := outline.BoundingBox()
		if max.X-min.X < chainTolerance || max.Y-min.Y < chainTolerance {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", max.X-min.X, max.Y-min.Y))
			continue
		}
		result.Outlines = append(result.Outlines, outline.Translate(-min.X, -min.Y))
	}

	sort.SliceStable(result.Outlines, func(i, j int) bool {
		return result.Outlines[i].Area() > result.Outlines[j].Area()
	})
	return result
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an outline.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylineToOutline(lw *entity.LwPolyline) geom.Outline {
	var outline geom.Outline

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := geom.Point2D{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := geom.Point2D{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			// The next vertex closes the arc, so drop the last point here.
			outline = append(outline, arcPts[:len(arcPts)-1]...)
		} else {
			outline = append(outline, current)
		}
	}

	return outline
}

// bulgeArcPoints generates points along an arc defined by two endpoints and
// a DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 geom.Point2D, bulge float64, numSegments int) geom.Outline {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return geom.Outline{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else {
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}

	var pts geom.Outline
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, geom.Point2D{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}
	return pts
}

// circleToOutline approximates a circle as a regular polygon.
func circleToOutline(c *entity.Circle, numSegments int) geom.Outline {
	outline := make(geom.Outline, numSegments)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		outline[i] = geom.Point2D{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return outline
}

// arcToPoints converts a DXF ARC entity to a series of line points.
func arcToPoints(a *entity.Arc, numSegments int) []geom.Point2D {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]geom.Point2D, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = geom.Point2D{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return pts
}

// pointsToSegments converts a point sequence to connected segments.
func pointsToSegments(pts []geom.Point2D) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum endpoint distance considered connected.
func chainSegments(segs []segment, tolerance float64) []geom.Outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []geom.Outline

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := geom.Outline{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if geom.PointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if geom.PointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 3 && geom.PointsClose(chain[0], chain[len(chain)-1], tolerance) {
			chain = chain[:len(chain)-1]
		}
		if len(chain) >= 3 {
			outlines = append(outlines, chain)
		}
	}

	return outlines
}
