package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/panelcut/internal/geom"
	"github.com/piwi3910/panelcut/internal/kernel"
	"github.com/piwi3910/panelcut/internal/panel"
)

var (
	panelFill     = color.NRGBA{R: 210, G: 180, B: 140, A: 255} // wood color
	outlineStroke = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	holeStroke    = color.NRGBA{R: 200, G: 0, B: 0, A: 255}
)

// PanelCanvas renders a built panel face: the outer boundary in dark lines
// over a filled bounding rectangle, holes in red.
type PanelCanvas struct {
	widget.BaseWidget
	face      *kernel.Face
	maxWidth  float32
	maxHeight float32
}

func NewPanelCanvas(face *kernel.Face, maxW, maxH float32) *PanelCanvas {
	pc := &PanelCanvas{
		face:      face,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetFace replaces the rendered face and refreshes the widget.
func (pc *PanelCanvas) SetFace(face *kernel.Face) {
	pc.face = face
	pc.Refresh()
}

func (pc *PanelCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPanelCanvasRenderer(pc)
}

type panelCanvasRenderer struct {
	pc      *PanelCanvas
	objects []fyne.CanvasObject
}

func newPanelCanvasRenderer(pc *PanelCanvas) *panelCanvasRenderer {
	r := &panelCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *panelCanvasRenderer) scaleAndBounds() (scale float32, min, max geom.Point2D, ok bool) {
	face := r.pc.face
	if face == nil || len(face.Outer) < 3 {
		return 0, geom.Point2D{}, geom.Point2D{}, false
	}
	min, max = face.BoundingBox()
	w := float32(max.X - min.X)
	h := float32(max.Y - min.Y)
	if w <= 0 || h <= 0 {
		return 0, geom.Point2D{}, geom.Point2D{}, false
	}
	scale = r.pc.maxWidth / w
	if s := r.pc.maxHeight / h; s < scale {
		scale = s
	}
	return scale, min, max, true
}

func (r *panelCanvasRenderer) rebuild() {
	r.objects = nil

	scale, min, max, ok := r.scaleAndBounds()
	if !ok {
		return
	}
	face := r.pc.face
	canvasW := float32(max.X-min.X) * scale
	canvasH := float32(max.Y-min.Y) * scale

	// Fyne's Y axis points down while the geometry's points up.
	toScreen := func(p geom.Point2D) fyne.Position {
		return fyne.NewPos(
			float32(p.X-min.X)*scale,
			canvasH-float32(p.Y-min.Y)*scale,
		)
	}

	bg := canvas.NewRectangle(panelFill)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	r.drawWire(face.Outer, outlineStroke, 2, toScreen)
	for _, h := range face.Holes {
		r.drawWire(h, holeStroke, 1, toScreen)
	}
}

func (r *panelCanvasRenderer) drawWire(wire geom.Outline, col color.NRGBA, width float32, toScreen func(geom.Point2D) fyne.Position) {
	n := len(wire)
	for i := 0; i < n; i++ {
		line := canvas.NewLine(col)
		line.StrokeWidth = width
		line.Position1 = toScreen(wire[i])
		line.Position2 = toScreen(wire[(i+1)%n])
		r.objects = append(r.objects, line)
	}
}

func (r *panelCanvasRenderer) Layout(size fyne.Size)        {}
func (r *panelCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *panelCanvasRenderer) Destroy()                     {}
func (r *panelCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *panelCanvasRenderer) MinSize() fyne.Size {
	scale, min, max, ok := r.scaleAndBounds()
	if !ok {
		return fyne.NewSize(r.pc.maxWidth, r.pc.maxHeight)
	}
	return fyne.NewSize(float32(max.X-min.X)*scale, float32(max.Y-min.Y)*scale)
}

// RenderBuildResult creates a scrollable view of a built panel with its
// statistics header and any diagnostics below the drawing.
func RenderBuildResult(name string, face *kernel.Face, k kernel.Kernel, report *panel.BuildReport) fyne.CanvasObject {
	if face == nil {
		return widget.NewLabel("No panel built yet. Load a layout file to begin.")
	}

	min, max := face.BoundingBox()
	header := widget.NewLabel(fmt.Sprintf(
		"%s: %.0f × %.0f mm — area %.0f mm², %d holes",
		name, max.X-min.X, max.Y-min.Y, k.Area(face), len(face.Holes),
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	items := []fyne.CanvasObject{header, NewPanelCanvas(face, 600, 400)}

	if report != nil && len(report.Diagnostics) > 0 {
		items = append(items, widget.NewSeparator())
		warnHeader := widget.NewLabel(fmt.Sprintf("%d diagnostics:", len(report.Diagnostics)))
		warnHeader.Importance = widget.WarningImportance
		items = append(items, warnHeader)
		for _, d := range report.Diagnostics {
			text := fmt.Sprintf("  [%s] %s", d.Stage, d.Reason)
			if d.ProfileRef != "" {
				text = fmt.Sprintf("  [%s] %s: %s", d.Stage, d.ProfileRef, d.Reason)
			}
			items = append(items, widget.NewLabel(text))
		}
	}

	return container.NewVScroll(container.NewVBox(items...))
}
