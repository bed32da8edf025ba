package world

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/marine-scene/pkg/math"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestNewBoat(t *testing.T) {
	b := NewBoat()
	if b.Position() != (math.Vec3{}) {
		t.Errorf("expected boat at origin, got %v", b.Position())
	}
	if b.Transform[0] != InitialScale || b.Transform[5] != InitialScale || b.Transform[10] != InitialScale {
		t.Errorf("expected uniform scale %f, got %v", InitialScale, b.Transform)
	}
	if b.Facing != (math.Vec3{Z: 1}) {
		t.Errorf("expected facing +Z, got %v", b.Facing)
	}
}

func TestTurnRightAccumulates(t *testing.T) {
	b := NewBoat()
	for i := 0; i < 100; i++ {
		b.TurnRight()
	}

	if got := b.Transform.YawY(); abs(got-0.03) > 1e-4 {
		t.Errorf("expected yaw 0.03, got %f", got)
	}
	if b.Position() != (math.Vec3{}) {
		t.Errorf("turning should not move the boat, got %v", b.Position())
	}
	// Facing drifts toward +X (right) without renormalization.
	if b.Facing.X <= 0 {
		t.Errorf("expected facing to turn toward +X, got %v", b.Facing)
	}
	if b.Facing.Length() <= 1 {
		t.Errorf("expected facing to grow past unit length, got %f", b.Facing.Length())
	}
}

func TestTurnLeftThenRight(t *testing.T) {
	b := NewBoat()
	b.TurnLeft()
	if got := b.Transform.YawY(); abs(got+TurnStep) > 1e-6 {
		t.Errorf("expected yaw %f, got %f", -TurnStep, got)
	}
	if b.Facing.X >= 0 {
		t.Errorf("expected facing to turn toward -X, got %v", b.Facing)
	}
}

func TestSingleTurnFacingStep(t *testing.T) {
	b := NewBoat()
	b.TurnRight()
	want := math.Vec3{X: TurnStep, Z: 1}
	if b.Facing != want {
		t.Errorf("expected facing %v, got %v", want, b.Facing)
	}
}

func TestForwardSpeedRatio(t *testing.T) {
	normal := NewBoat()
	normal.Forward()
	boost := NewBoat()
	boost.Boost()

	n := normal.Position().Length()
	f := boost.Position().Length()
	if abs(f/n-3) > 1e-5 {
		t.Errorf("expected boost to be 3x forward, got %f / %f = %f", f, n, f/n)
	}
	if abs(n-1.0/75) > 1e-7 {
		t.Errorf("expected forward step 1/75, got %f", n)
	}
}

func TestBackward(t *testing.T) {
	b := NewBoat()
	b.Backward()
	want := float32(-1.0 / 200)
	if got := b.Position().Z; abs(got-want) > 1e-7 {
		t.Errorf("expected z %f, got %f", want, got)
	}
}

func TestMoveFollowsFacing(t *testing.T) {
	b := NewBoat()
	for i := 0; i < 1000; i++ {
		b.TurnRight()
	}
	b.Forward()
	p := b.Position()
	if p.X <= 0 || p.Z <= 0 {
		t.Errorf("expected movement toward +X+Z after turning right, got %v", p)
	}
	if p.Y != 0 {
		t.Errorf("boat should stay level, got y=%f", p.Y)
	}
}

func TestFollowEyes(t *testing.T) {
	b := NewBoat()
	b.Transform = math.Translate(3, 0, 4).Mul(b.Transform)

	if got, want := b.FirstPersonEye(), (math.Vec3{X: 3, Y: 2, Z: 4}); got != want {
		t.Errorf("first-person eye: expected %v, got %v", want, got)
	}
	// The chase offset stays fixed in world space regardless of heading.
	for i := 0; i < 5000; i++ {
		b.TurnLeft()
	}
	if got, want := b.ThirdPersonEye(), (math.Vec3{X: 3, Y: 20, Z: -11}); got != want {
		t.Errorf("third-person eye: expected %v, got %v", want, got)
	}
}

func TestRockField(t *testing.T) {
	w := New()

	var rows, columns int
	for i, p := range RockPositions {
		switch {
		case p.Z == 67 || p.Z == -67:
			rows++
			if int(p.X)%25 != 0 || p.X < -50 || p.X > 50 {
				t.Errorf("rock %d: unexpected row x %f", i, p.X)
			}
		case p.X == 70 || p.X == -70:
			columns++
			if (55-int(p.Z))%15 != 0 {
				t.Errorf("rock %d: unexpected column z %f", i, p.Z)
			}
		default:
			t.Errorf("rock %d at %v is in neither the rows nor the columns", i, p)
		}

		if got := w.Rocks[i].Translation(); got != p {
			t.Errorf("rock %d transform: expected %v, got %v", i, p, got)
		}
	}
	if rows != 10 || columns != 18 {
		t.Errorf("expected 10 row rocks and 18 column rocks, got %d and %d", rows, columns)
	}

	// Spot-check the literal layout.
	if RockPositions[0] != (math.Vec3{X: -50, Y: -6, Z: 67}) {
		t.Errorf("rock 0: %v", RockPositions[0])
	}
	if RockPositions[9] != (math.Vec3{X: 50, Y: -7, Z: -67}) {
		t.Errorf("rock 9: %v", RockPositions[9])
	}
	if RockPositions[27] != (math.Vec3{X: 70, Y: -7, Z: -65}) {
		t.Errorf("rock 27: %v", RockPositions[27])
	}
}

func TestWater(t *testing.T) {
	w := New()
	if got := w.Water.Translation(); got != (math.Vec3{Y: -1.5}) {
		t.Errorf("expected water at y=-1.5, got %v", got)
	}
}

func TestSkyTransform(t *testing.T) {
	tests := []float32{0, 1, 12.5, 90}
	for _, elapsed := range tests {
		m := SkyTransform(elapsed)

		if m.Translation() != (math.Vec3{}) {
			t.Errorf("t=%f: sky should not be translated, got %v", elapsed, m.Translation())
		}
		if got := m.YawY(); abs(angleDiff(got, -elapsed/10)) > 1e-4 {
			t.Errorf("t=%f: expected yaw %f, got %f", elapsed, -elapsed/10, got)
		}
		// Every basis column has length 120.
		for col := 0; col < 3; col++ {
			v := math.Vec3{X: m[col*4], Y: m[col*4+1], Z: m[col*4+2]}
			if abs(v.Length()-SkyScale) > 1e-3 {
				t.Errorf("t=%f: column %d length %f, want %f", elapsed, col, v.Length(), SkyScale)
			}
		}
	}
}

func TestWorldUpdateMovesOnlySky(t *testing.T) {
	w := New()
	water, rocks := w.Water, w.Rocks
	w.Update(30)

	if w.Water != water || w.Rocks != rocks {
		t.Error("static transforms changed")
	}
	if w.Sky == SkyTransform(0) {
		t.Error("sky did not rotate")
	}
}

// angleDiff wraps a-b into (-pi, pi].
func angleDiff(a, b float32) float32 {
	d := float64(a - b)
	for d > gomath.Pi {
		d -= 2 * gomath.Pi
	}
	for d <= -gomath.Pi {
		d += 2 * gomath.Pi
	}
	return float32(d)
}
