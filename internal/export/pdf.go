package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/panelcut/internal/geom"
	"github.com/piwi3910/panelcut/internal/kernel"
	"github.com/piwi3910/panelcut/internal/panel"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	footerHeight = 18.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	qrSize       = 22.0
)

// PanelInfo is the metadata encoded into the cut sheet's QR code.
type PanelInfo struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width_mm"`
	Height float64 `json:"height_mm"`
	Area   float64 `json:"area_mm2"`
	Holes  int     `json:"holes"`
}

// ExportPDF generates a one-page cut sheet: the panel drawing with its
// holes, dimension annotations, build statistics, diagnostics, and a QR
// code encoding the panel metadata.
func ExportPDF(path, name string, face *kernel.Face, k kernel.Kernel, report *panel.BuildReport) error {
	if face == nil || len(face.Outer) < 3 {
		return fmt.Errorf("no face to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	min, max := face.BoundingBox()
	width := max.X - min.X
	height := max.Y - min.Y
	area := k.Area(face)

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Panel: %s (%.0f x %.0f mm)", name, width, height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Area: %.0f mm² | Holes: %d", area, len(face.Holes))
	if report != nil {
		stats += fmt.Sprintf(" | Edge cuts: %d | Diagnostics: %d", report.EdgeCuts, len(report.Diagnostics))
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Drawing area, scale to fit
	drawWidth := pageWidth - marginLeft - marginRight - qrSize - 5
	drawHeight := pageHeight - drawAreaTop - marginBottom - footerHeight
	scale := math.Min(drawWidth/width, drawHeight/height)

	canvasW := width * scale
	canvasH := height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Panel fill (wood color) via the outer bounding rectangle, then the
	// actual wires on top. Holes are outlined, not knocked out.
	pdf.SetFillColor(245, 240, 230)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	toPage := func(p geom.Point2D) (float64, float64) {
		// PDF y grows downward, geometry y grows upward.
		return offsetX + (p.X-min.X)*scale, offsetY + (max.Y-p.Y)*scale
	}

	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.5)
	drawWire(pdf, face.Outer, toPage)

	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.3)
	for _, h := range face.Holes {
		drawWire(pdf, h, toPage)
	}

	drawDimensions(pdf, width, height, offsetX, offsetY, canvasW, canvasH)

	if err := drawQRCode(pdf, PanelInfo{
		Name:   name,
		Width:  width,
		Height: height,
		Area:   area,
		Holes:  len(face.Holes),
	}); err != nil {
		return err
	}

	if report != nil {
		drawDiagnostics(pdf, report.Diagnostics, offsetY+canvasH+8)
	}

	return pdf.OutputFileAndClose(path)
}

// drawWire renders one closed wire as line segments.
func drawWire(pdf *fpdf.Fpdf, wire geom.Outline, toPage func(geom.Point2D) (float64, float64)) {
	n := len(wire)
	for i := 0; i < n; i++ {
		x1, y1 := toPage(wire[i])
		x2, y2 := toPage(wire[(i+1)%n])
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensions adds width and height labels outside the drawing.
func drawDimensions(pdf *fpdf.Fpdf, width, height, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawQRCode places the metadata QR code in the top-right corner.
func drawQRCode(pdf *fpdf.Fpdf, info PanelInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal panel info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", info.Name)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrSize, drawAreaTop, qrSize, qrSize,
		false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// drawDiagnostics lists build diagnostics below the drawing.
func drawDiagnostics(pdf *fpdf.Fpdf, diags []panel.Diagnostic, startY float64) {
	if len(diags) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(180, 100, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(100, 5, "Build diagnostics:", "", 0, "L", false, 0, "")
	startY += 5

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(0, 0, 0)
	for _, d := range diags {
		if startY > pageHeight-marginBottom {
			break
		}
		text := fmt.Sprintf("- [%s] %s", d.Stage, d.Reason)
		if d.ProfileRef != "" {
			text = fmt.Sprintf("- [%s] %s: %s", d.Stage, d.ProfileRef, d.Reason)
		}
		pdf.SetXY(marginLeft+3, startY)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 3.5, text, "", 0, "L", false, 0, "")
		startY += 3.5
	}
}
