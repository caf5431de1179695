package panel

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/panelcut/internal/geom"
	"github.com/piwi3910/panelcut/internal/profile"
)

// AddFromFile loads a stored profile and schedules it on the panel. A
// profile that yields no usable boundary is skipped with a diagnostic;
// it never aborts the panel build.
func (p *Panel) AddFromFile(path string, pl Placement) {
	wire, err := profile.Load(p.kern, path)
	if err != nil {
		p.diag(StageLoad, pl.ProfileRef, err.Error())
		return
	}
	p.AddShape(wire, pl)
}

// AddShape places a loaded profile wire on the panel according to the
// placement and schedules it as an edge cut or an internal hole. A
// placement whose transformed geometry fails validation is dropped with
// a diagnostic rather than failing the build.
func (p *Panel) AddShape(wire geom.Outline, pl Placement) {
	switch pl.Kind {
	case KindInternalCutout:
		p.addInternalCutout(wire, pl)
	default:
		p.addEdgeCut(wire, pl)
	}
}

// addEdgeCut rotates the wire about its bounding-box minimum corner,
// renormalizes it back to (0,0), derives the target position from the
// placement's edge, and schedules the resulting face for subtraction.
func (p *Panel) addEdgeCut(wire geom.Outline, pl Placement) {
	placed := rotateAndRenormalize(wire, pl.AngleDeg)

	// Effective dimensions are read off the rotated bounding box.
	min, max := placed.BoundingBox()
	effW := max.X - min.X
	effH := max.Y - min.Y

	x, y := p.edgeTarget(pl, effW, effH)
	placed = placed.Translate(p.Origin.X+x-min.X, p.Origin.Y+y-min.Y)

	face, err := p.kern.BuildFace(placed)
	if err == nil {
		err = p.kern.Validate(face)
	}
	if err != nil {
		p.diag(StagePlacement, pl.ProfileRef,
			fmt.Sprintf("invalid edge-affecting geometry, dropped: %v", err))
		return
	}

	// Advisory only: a cut outside the panel bounds subtracts nothing,
	// which is a defined no-op, but worth surfacing.
	cmin, cmax := face.BoundingBox()
	if cmax.X < p.Origin.X || cmin.X > p.Origin.X+p.Width ||
		cmax.Y < p.Origin.Y || cmin.Y > p.Origin.Y+p.Height {
		p.diag(StagePlacement, pl.ProfileRef, "edge cut does not intersect panel bounds")
	}

	p.edgeCuts = append(p.edgeCuts, face)
	p.log.Debug("edge cut scheduled",
		zap.String("profile", pl.ProfileRef),
		zap.String("edge", pl.Edge.String()),
		zap.Float64("x", x), zap.Float64("y", y),
		zap.Float64("eff_width", effW), zap.Float64("eff_height", effH))
}

// addInternalCutout translates the wire center-to-center onto the target
// point (X from the left edge, Y measured down from the top edge) and
// registers it as a hole. Rotation is defined as a no-op for cutouts.
// The wire's orientation is reversed unconditionally before registration:
// outer boundaries stay as loaded, holes are reversed.
func (p *Panel) addInternalCutout(wire geom.Outline, pl Placement) {
	center := wire.Center()
	target := geom.Point2D{
		X: p.Origin.X + pl.X,
		Y: p.Origin.Y + p.Height - pl.Y,
	}
	placed := wire.Translate(target.X-center.X, target.Y-center.Y)

	// Gate the placement on a temporary face build of the wire alone.
	gate := placed
	if !gate.IsCCW() {
		gate = gate.Reverse()
	}
	face, err := p.kern.BuildFace(gate)
	if err == nil {
		err = p.kern.Validate(face)
	}
	if err != nil {
		p.diag(StagePlacement, pl.ProfileRef,
			fmt.Sprintf("invalid internal-cutout geometry, dropped: %v", err))
		return
	}

	p.innerWires = append(p.innerWires, placed.Reverse())
	p.log.Debug("internal cutout scheduled",
		zap.String("profile", pl.ProfileRef),
		zap.Float64("center_x", target.X), zap.Float64("center_y", target.Y))
}

// edgeTarget derives the placement position from the targeted edge: the
// shape sits flush against that edge and the position parameter fills the
// perpendicular axis. Without an edge, explicit x/y are used verbatim.
func (p *Panel) edgeTarget(pl Placement, effW, effH float64) (x, y float64) {
	switch pl.Edge {
	case EdgeLeft:
		return 0, pl.Position
	case EdgeRight:
		return p.Width - effW, pl.Position
	case EdgeTop:
		return pl.Position, p.Height - effH
	case EdgeBottom:
		return pl.Position, 0
	default:
		return pl.X, pl.Y
	}
}

// rotateAndRenormalize rotates the wire about its own bounding-box minimum
// corner (not centroid), preserving the (0,0)-anchored convention, then
// shifts any negative coordinates back so the minimum corner sits at (0,0).
func rotateAndRenormalize(wire geom.Outline, angleDeg float64) geom.Outline {
	min, _ := wire.BoundingBox()
	rotated := wire.RotateAbout(min.X, min.Y, angleDeg)

	rmin, _ := rotated.BoundingBox()
	dx, dy := 0.0, 0.0
	if rmin.X < 0 {
		dx = -rmin.X
	}
	if rmin.Y < 0 {
		dy = -rmin.Y
	}
	if dx != 0 || dy != 0 {
		rotated = rotated.Translate(dx, dy)
	}
	return rotated
}
