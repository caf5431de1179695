package export

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/piwi3910/panelcut/internal/importer"
	"github.com/piwi3910/panelcut/internal/kernel"
)

func TestExportDXF_RoundTripThroughImporter(t *testing.T) {
	face, k := testFace(t)
	path := filepath.Join(t.TempDir(), "panel.dxf")

	if err := ExportDXF(path, face); err != nil {
		t.Fatalf("export: %v", err)
	}

	result := importer.ImportDXF(path)
	if len(result.Errors) != 0 {
		t.Fatalf("reimport errors: %v", result.Errors)
	}
	if len(result.Outlines) != 2 {
		t.Fatalf("expected 2 outlines (outer + hole), got %d", len(result.Outlines))
	}

	// Outlines come back largest first and normalized to (0, 0).
	if math.Abs(result.Outlines[0].Area()-k.Area(&kernel.Face{Outer: face.Outer})) > 1e-6 {
		t.Errorf("outer area mismatch: %f vs %f", result.Outlines[0].Area(), face.Outer.Area())
	}
	if math.Abs(result.Outlines[1].Area()-50*50) > 1e-6 {
		t.Errorf("hole area mismatch: %f", result.Outlines[1].Area())
	}
}

func TestExportDXF_NoFace(t *testing.T) {
	if err := ExportDXF(filepath.Join(t.TempDir(), "x.dxf"), nil); err == nil {
		t.Error("expected error for nil face")
	}
}
