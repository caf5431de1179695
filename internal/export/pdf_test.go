package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/panelcut/internal/panel"
)

func TestExportPDF_WritesDocument(t *testing.T) {
	face, k := testFace(t)
	path := filepath.Join(t.TempDir(), "panel.pdf")

	report := &panel.BuildReport{
		EdgeCuts: 1,
		Holes:    1,
		Diagnostics: []panel.Diagnostic{
			{Stage: "cut", Reason: "edge cut 2 skipped, keeping prior boundary"},
		},
	}

	if err := ExportPDF(path, "Wardrobe Side", face, k, report); err != nil {
		t.Fatalf("export: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("exported PDF is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Error("output does not look like a PDF document")
	}
}

func TestExportPDF_NoFace(t *testing.T) {
	_, k := testFace(t)
	if err := ExportPDF(filepath.Join(t.TempDir(), "x.pdf"), "x", nil, k, nil); err == nil {
		t.Error("expected error for nil face")
	}
}

func TestExportPDF_NilReport(t *testing.T) {
	face, k := testFace(t)
	path := filepath.Join(t.TempDir(), "panel.pdf")
	if err := ExportPDF(path, "Plain", face, k, nil); err != nil {
		t.Fatalf("export without report: %v", err)
	}
}
