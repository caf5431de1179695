package profile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/piwi3910/panelcut/internal/brep"
	"github.com/piwi3910/panelcut/internal/geom"
	"github.com/piwi3910/panelcut/internal/kernel"
)

func writeDoc(t *testing.T, doc *brep.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.pbrep")
	if err := brep.WriteFile(path, doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad_SingleWire(t *testing.T) {
	k := kernel.NewPlanar()
	path := writeDoc(t, &brep.Document{
		Wires: []brep.Wire{{Points: geom.Rect(0, 0, 50, 30)}},
	})

	wire, err := Load(k, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !wire.IsCCW() {
		t.Error("loaded wire should be counter-clockwise")
	}
	if wire.Area() != 50*30 {
		t.Errorf("expected area 1500, got %f", wire.Area())
	}
}

func TestLoad_PicksLargestWire(t *testing.T) {
	k := kernel.NewPlanar()
	path := writeDoc(t, &brep.Document{
		Wires: []brep.Wire{
			{Points: geom.Rect(0, 0, 10, 10)},
			{Points: geom.Rect(0, 0, 200, 100)},
			{Reversed: true, Points: geom.Rect(20, 20, 5, 5).Reverse()},
		},
	})

	wire, err := Load(k, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if wire.Area() != 200*100 {
		t.Errorf("expected the largest wire (20000), got area %f", wire.Area())
	}
}

func TestLoad_NormalizesClockwiseWire(t *testing.T) {
	k := kernel.NewPlanar()
	path := writeDoc(t, &brep.Document{
		Wires: []brep.Wire{{Points: geom.Rect(0, 0, 40, 40).Reverse()}},
	})

	wire, err := Load(k, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !wire.IsCCW() {
		t.Error("clockwise input should be normalized to counter-clockwise")
	}
}

func TestLoad_NoUsableBoundary(t *testing.T) {
	k := kernel.NewPlanar()
	path := writeDoc(t, &brep.Document{
		Wires: []brep.Wire{
			{Points: geom.Outline{{X: 0, Y: 0}, {X: 10, Y: 0}}},
			{Points: geom.Outline{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}},
		},
	})

	_, err := Load(k, path)
	if err == nil {
		t.Fatal("expected error for degenerate wires")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Errorf("expected *profile.Error, got %T", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	k := kernel.NewPlanar()
	_, err := Load(k, filepath.Join(t.TempDir(), "absent.pbrep"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Errorf("expected *profile.Error, got %T", err)
	}
}
