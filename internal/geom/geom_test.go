package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func square(x, y, size float64) Outline {
	return Rect(x, y, size, size)
}

// ─── Area and Winding Tests ────────────────────────────────

func TestSignedArea_CCW(t *testing.T) {
	o := Rect(0, 0, 10, 5)
	if got := o.SignedArea(); !almostEqual(got, 50) {
		t.Errorf("expected signed area 50, got %f", got)
	}
	if !o.IsCCW() {
		t.Error("Rect should wind counter-clockwise")
	}
}

func TestSignedArea_Reversed(t *testing.T) {
	o := Rect(0, 0, 10, 5).Reverse()
	if got := o.SignedArea(); !almostEqual(got, -50) {
		t.Errorf("expected signed area -50, got %f", got)
	}
	if o.IsCCW() {
		t.Error("reversed rect should wind clockwise")
	}
}

func TestArea_IgnoresWinding(t *testing.T) {
	o := Rect(0, 0, 4, 3)
	if !almostEqual(o.Area(), o.Reverse().Area()) {
		t.Error("Area should be winding-independent")
	}
}

// ─── BoundingBox and Center Tests ──────────────────────────

func TestBoundingBox(t *testing.T) {
	o := Outline{{X: 2, Y: 1}, {X: 8, Y: 3}, {X: 5, Y: 9}}
	min, max := o.BoundingBox()
	if min.X != 2 || min.Y != 1 || max.X != 8 || max.Y != 9 {
		t.Errorf("unexpected bbox: min=%v max=%v", min, max)
	}
}

func TestCenter(t *testing.T) {
	c := Rect(10, 20, 4, 6).Center()
	if !almostEqual(c.X, 12) || !almostEqual(c.Y, 23) {
		t.Errorf("expected center (12, 23), got %v", c)
	}
}

func TestWidthHeight(t *testing.T) {
	o := Rect(5, 5, 30, 40)
	if !almostEqual(o.Width(), 30) || !almostEqual(o.Height(), 40) {
		t.Errorf("expected 30 x 40, got %f x %f", o.Width(), o.Height())
	}
}

// ─── Transform Tests ───────────────────────────────────────

func TestTranslate(t *testing.T) {
	o := square(0, 0, 2).Translate(10, -5)
	min, _ := o.BoundingBox()
	if !almostEqual(min.X, 10) || !almostEqual(min.Y, -5) {
		t.Errorf("expected min (10, -5), got %v", min)
	}
}

func TestRotateAbout_Quarter(t *testing.T) {
	// Rotating (1, 0) by 90 degrees about the origin lands on (0, 1).
	o := Outline{{X: 1, Y: 0}}
	r := o.RotateAbout(0, 0, 90)
	if !almostEqual(r[0].X, 0) || !almostEqual(r[0].Y, 1) {
		t.Errorf("expected (0, 1), got %v", r[0])
	}
}

func TestRotateAbout_ZeroIsIdentity(t *testing.T) {
	o := square(3, 4, 5)
	r := o.RotateAbout(3, 4, 0)
	for i := range o {
		if o[i] != r[i] {
			t.Fatalf("point %d changed under zero rotation: %v vs %v", i, o[i], r[i])
		}
	}
}

func TestRotateAbout_PreservesArea(t *testing.T) {
	o := square(0, 0, 10)
	r := o.RotateAbout(0, 0, 37)
	if !almostEqual(o.Area(), r.Area()) {
		t.Errorf("rotation changed area: %f vs %f", o.Area(), r.Area())
	}
}

// ─── Containment Tests ─────────────────────────────────────

func TestContains(t *testing.T) {
	o := square(0, 0, 10)
	if !o.Contains(Point2D{X: 5, Y: 5}) {
		t.Error("(5,5) should be inside")
	}
	if o.Contains(Point2D{X: 15, Y: 5}) {
		t.Error("(15,5) should be outside")
	}
	if o.Contains(Point2D{X: -1, Y: -1}) {
		t.Error("(-1,-1) should be outside")
	}
}

func TestContains_Concave(t *testing.T) {
	// L shape: the notch interior is outside.
	o := Outline{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 4},
		{X: 4, Y: 4}, {X: 4, Y: 10}, {X: 0, Y: 10},
	}
	if !o.Contains(Point2D{X: 2, Y: 8}) {
		t.Error("(2,8) should be inside the L")
	}
	if o.Contains(Point2D{X: 8, Y: 8}) {
		t.Error("(8,8) is in the notch, should be outside")
	}
}

// ─── Dedup Tests ───────────────────────────────────────────

func TestDedupConsecutive(t *testing.T) {
	o := Outline{
		{X: 0, Y: 0}, {X: 0, Y: 0},
		{X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 0, Y: 0}, // duplicate closing point
	}
	got := o.DedupConsecutive(eps)
	if len(got) != 4 {
		t.Errorf("expected 4 points after dedup, got %d", len(got))
	}
}

func TestPointsClose(t *testing.T) {
	if !PointsClose(Point2D{X: 0, Y: 0}, Point2D{X: 0.005, Y: 0}, 0.01) {
		t.Error("points within tolerance should be close")
	}
	if PointsClose(Point2D{X: 0, Y: 0}, Point2D{X: 0.02, Y: 0}, 0.01) {
		t.Error("points beyond tolerance should not be close")
	}
}
