package library

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/panelcut/internal/brep"
	"github.com/piwi3910/panelcut/internal/geom"
	"github.com/piwi3910/panelcut/internal/kernel"
)

func writeProfile(t *testing.T, dir string, wire geom.Outline) string {
	t.Helper()
	path := filepath.Join(dir, "src.pbrep")
	if err := brep.WriteFile(path, &brep.Document{
		Wires: []brep.Wire{{Points: wire}},
	}); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestOpen_EmptyDirectory(t *testing.T) {
	lib, err := Open(filepath.Join(t.TempDir(), "lib"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(lib.List()) != 0 {
		t.Error("new library should be empty")
	}
}

func TestIngest_StoresCanonicalizedShape(t *testing.T) {
	k := kernel.NewPlanar()
	dir := t.TempDir()
	src := writeProfile(t, dir, geom.Rect(0, 0, 50, 30).Reverse()) // clockwise input

	lib, err := Open(filepath.Join(dir, "lib"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	entry, err := lib.Ingest(k, src, "skirting-notch", "edge_affecting")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if entry.BBoxW != 50 || entry.BBoxH != 30 {
		t.Errorf("unexpected bbox %f x %f", entry.BBoxW, entry.BBoxH)
	}
	if entry.Area != 50*30 {
		t.Errorf("unexpected area %f", entry.Area)
	}
	if len(entry.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", entry.ID)
	}

	// The stored geometry is loadable and counter-clockwise.
	path, err := lib.Resolve(entry.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	face, err := k.ReadBREP(path)
	if err != nil {
		t.Fatalf("read stored shape: %v", err)
	}
	if !face.Outer.IsCCW() {
		t.Error("stored shape should be counter-clockwise")
	}
}

func TestOpen_ReloadsIndex(t *testing.T) {
	k := kernel.NewPlanar()
	dir := t.TempDir()
	src := writeProfile(t, dir, geom.Rect(0, 0, 20, 20))
	libDir := filepath.Join(dir, "lib")

	lib, err := Open(libDir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := lib.Ingest(k, src, "square", ""); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	reopened, err := Open(libDir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	entries := reopened.List()
	if len(entries) != 1 || entries[0].Name != "square" {
		t.Errorf("unexpected entries after reload: %+v", entries)
	}
}

func TestResolve_ByNameIDAndPath(t *testing.T) {
	k := kernel.NewPlanar()
	dir := t.TempDir()
	src := writeProfile(t, dir, geom.Rect(0, 0, 20, 20))

	lib, err := Open(filepath.Join(dir, "lib"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	entry, err := lib.Ingest(k, src, "square", "")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if _, err := lib.Resolve(entry.Name); err != nil {
		t.Errorf("resolve by name: %v", err)
	}
	if _, err := lib.Resolve(entry.ID); err != nil {
		t.Errorf("resolve by id: %v", err)
	}
	if _, err := lib.Resolve(src); err != nil {
		t.Errorf("resolve by direct path: %v", err)
	}
	if _, err := lib.Resolve("nope"); err == nil {
		t.Error("expected error for unknown reference")
	}
}

func TestRemove(t *testing.T) {
	k := kernel.NewPlanar()
	dir := t.TempDir()
	src := writeProfile(t, dir, geom.Rect(0, 0, 20, 20))

	lib, err := Open(filepath.Join(dir, "lib"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	entry, err := lib.Ingest(k, src, "square", "")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if err := lib.Remove(entry.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(lib.List()) != 0 {
		t.Error("library should be empty after removal")
	}
	if _, err := lib.Resolve(entry.ID); err == nil {
		t.Error("removed entry should not resolve")
	}
}

func TestIngestOutline(t *testing.T) {
	k := kernel.NewPlanar()
	lib, err := Open(filepath.Join(t.TempDir(), "lib"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	entry, err := lib.IngestOutline(k, geom.Rect(0, 0, 40, 10), "slot", "edge_affecting")
	if err != nil {
		t.Fatalf("ingest outline: %v", err)
	}
	if entry.Area != 400 {
		t.Errorf("unexpected area %f", entry.Area)
	}
}
