// Package panel implements the panel assembly pipeline: a rectangular panel
// plus an ordered list of placed profile shapes becomes one valid planar
// face. Edge-affecting profiles bite into the outer boundary via boolean
// subtraction; internal cutouts become holes. Every recoverable failure is
// replaced by a defined fallback and recorded as a diagnostic, so a build
// always produces some valid shape.
package panel

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/piwi3910/panelcut/internal/geom"
	"github.com/piwi3910/panelcut/internal/kernel"
)

// Kind distinguishes how a placed profile modifies the panel.
type Kind int

const (
	// KindEdgeAffecting profiles cut into the panel's outer boundary
	// (notches, slots at an edge).
	KindEdgeAffecting Kind = iota
	// KindInternalCutout profiles punch a hole fully inside the panel.
	KindInternalCutout
)

func (k Kind) String() string {
	switch k {
	case KindInternalCutout:
		return "internal_cutout"
	default:
		return "edge_affecting"
	}
}

// ParseKind converts a textual kind into a Kind value.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "edge_affecting", "edge-affecting", "edge", "notch":
		return KindEdgeAffecting, nil
	case "internal_cutout", "internal-cutout", "internal", "cutout", "hole":
		return KindInternalCutout, nil
	default:
		return KindEdgeAffecting, fmt.Errorf("unknown placement kind %q", s)
	}
}

// Edge identifies which panel edge an edge-affecting profile targets.
type Edge int

const (
	EdgeNone Edge = iota // no edge: explicit x/y is used verbatim
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "none"
	}
}

// ParseEdge converts a textual edge name into an Edge value.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "-":
		return EdgeNone, nil
	case "left", "l":
		return EdgeLeft, nil
	case "right", "r":
		return EdgeRight, nil
	case "top", "t":
		return EdgeTop, nil
	case "bottom", "b":
		return EdgeBottom, nil
	default:
		return EdgeNone, fmt.Errorf("unknown edge %q", s)
	}
}

// Placement describes where and how one profile lands on the panel.
//
// For KindEdgeAffecting, Edge+Position place the shape flush against the
// targeted edge with Position filling the perpendicular axis; when Edge is
// EdgeNone the explicit X/Y are used verbatim. For KindInternalCutout, X is
// the target center measured from the left edge and Y from the top edge
// (inverted relative to the Y-up convention used internally); rotation is
// a no-op for cutouts.
type Placement struct {
	ProfileRef string
	Kind       Kind
	X          float64
	Y          float64
	AngleDeg   float64
	Edge       Edge
	Position   float64
}

// Diagnostic stages.
const (
	StageLoad        = "load"
	StagePlacement   = "placement"
	StageCut         = "cut"
	StageHoles       = "holes"
	StageOrientation = "orientation-fix"
)

// Diagnostic records one recoverable failure or advisory emitted during
// placement or build. Diagnostics are the audit trail for the pipeline's
// lossy fallbacks.
type Diagnostic struct {
	Stage      string `json:"stage"`
	ProfileRef string `json:"profile_ref,omitempty"`
	Reason     string `json:"reason"`
}

// BuildReport summarizes a finished build.
type BuildReport struct {
	EdgeCuts    int          `json:"edge_cuts"`
	Holes       int          `json:"holes"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Panel is a planar rectangular panel that library profiles are cut from.
// Placements mutate it; Build consumes it read-only.
type Panel struct {
	Width  float64
	Height float64
	Origin geom.Point2D

	kern kernel.Kernel
	log  *zap.Logger

	edgeCuts   []*kernel.Face
	innerWires []geom.Outline
	diags      []Diagnostic
}

// Option configures a Panel.
type Option func(*Panel)

// WithKernel injects the geometry kernel backing the pipeline.
func WithKernel(k kernel.Kernel) Option {
	return func(p *Panel) { p.kern = k }
}

// WithLogger attaches a logger for structured diagnostic events.
func WithLogger(log *zap.Logger) Option {
	return func(p *Panel) { p.log = log }
}

// WithOrigin moves the panel's minimum corner away from (0, 0).
func WithOrigin(origin geom.Point2D) Option {
	return func(p *Panel) { p.Origin = origin }
}

// New creates a panel of the given dimensions in mm.
func New(width, height float64, opts ...Option) *Panel {
	p := &Panel{Width: width, Height: height}
	for _, opt := range opts {
		opt(p)
	}
	if p.kern == nil {
		p.kern = kernel.NewPlanar()
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	return p
}

// Kernel returns the geometry kernel the panel was built with.
func (p *Panel) Kernel() kernel.Kernel {
	return p.kern
}

// Clear removes all scheduled cuts, holes, and diagnostics.
func (p *Panel) Clear() {
	p.edgeCuts = nil
	p.innerWires = nil
	p.diags = nil
}

// Counts returns the number of scheduled edge cuts and inner wires.
func (p *Panel) Counts() (edgeCuts, holes int) {
	return len(p.edgeCuts), len(p.innerWires)
}

// Diagnostics returns the events recorded so far.
func (p *Panel) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(p.diags))
	copy(out, p.diags)
	return out
}

func (p *Panel) String() string {
	return fmt.Sprintf("Panel(%.0fmm x %.0fmm) with %d edge cuts, %d internal wires",
		p.Width, p.Height, len(p.edgeCuts), len(p.innerWires))
}

// baseRectWire creates the pristine outer rectangular wire.
func (p *Panel) baseRectWire() geom.Outline {
	return geom.Rect(p.Origin.X, p.Origin.Y, p.Width, p.Height)
}

// baseRectFace creates the base rectangular face.
func (p *Panel) baseRectFace() (*kernel.Face, error) {
	return p.kern.BuildFace(p.baseRectWire())
}

func (p *Panel) diag(stage, profileRef, reason string) {
	d := Diagnostic{Stage: stage, ProfileRef: profileRef, Reason: reason}
	p.diags = append(p.diags, d)
	p.log.Warn("panel diagnostic",
		zap.String("stage", stage),
		zap.String("profile", profileRef),
		zap.String("reason", reason))
}

func (p *Panel) reportSnapshot(holes int) *BuildReport {
	return &BuildReport{
		EdgeCuts:    len(p.edgeCuts),
		Holes:       holes,
		Diagnostics: p.Diagnostics(),
	}
}
