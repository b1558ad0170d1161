package core

import (
	"math"
	"testing"
)

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        Box{MinX: 0, MinY: 0, MaxX: 0.2, MaxY: 0.2},
			b:        Box{MinX: 0.1, MinY: 0.1, MaxX: 0.3, MaxY: 0.3},
			expected: true,
		},
		{
			name:     "separated horizontally",
			a:        Box{MinX: 0, MinY: 0, MaxX: 0.2, MaxY: 0.2},
			b:        Box{MinX: 0.5, MinY: 0, MaxX: 0.7, MaxY: 0.2},
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        Box{MinX: 0, MinY: 0, MaxX: 0.2, MaxY: 0.2},
			b:        Box{MinX: 0, MinY: -0.5, MaxX: 0.2, MaxY: -0.3},
			expected: false,
		},
		{
			name:     "touching edges (no overlap)",
			a:        Box{MinX: 0, MinY: 0, MaxX: 0.25, MaxY: 0.25},
			b:        Box{MinX: 0.25, MinY: 0, MaxX: 0.5, MaxY: 0.25},
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewBox(Vec2{}, 1, 1),
			b:        NewBox(Vec2{X: 0.1, Y: -0.1}, 0.05, 0.05),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxGeometry(t *testing.T) {
	b := NewBox(Vec2{X: 0.5, Y: -0.25}, 0.25, 0.5)

	if b.Width() != 0.5 {
		t.Errorf("Width() = %f, expected 0.5", b.Width())
	}
	if b.Height() != 1.0 {
		t.Errorf("Height() = %f, expected 1.0", b.Height())
	}
	if c := b.Center(); c != (Vec2{X: 0.5, Y: -0.25}) {
		t.Errorf("Center() = %+v, expected (0.5, -0.25)", c)
	}
	if !b.Contains(Vec2{X: 0.75, Y: 0.25}) {
		t.Error("Contains should include the max corner")
	}
	if b.Contains(Vec2{X: 0.8, Y: 0}) {
		t.Error("Contains should exclude points right of the box")
	}
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name                   string
		aMin, aMax, bMin, bMax float64
		expected               bool
	}{
		{"overlap", 0, 1, 0.5, 2, true},
		{"touching counts", 0, 1, 1, 2, true},
		{"disjoint", 0, 1, 1.5, 2, false},
		{"contained", -1, 1, -0.1, 0.1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SpanOverlaps(tc.aMin, tc.aMax, tc.bMin, tc.bMax); got != tc.expected {
				t.Errorf("SpanOverlaps() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCirclesOverlap(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	if !CirclesOverlap(a, 0.05, Vec2{X: 0.08, Y: 0}, 0.05) {
		t.Error("circles 0.08 apart with radii 0.05 should overlap")
	}
	if CirclesOverlap(a, 0.05, Vec2{X: 0.1, Y: 0}, 0.05) {
		t.Error("touching circles should not overlap")
	}
	if d := a.Dist(Vec2{X: 3, Y: 4}); math.Abs(d-5) > 1e-12 {
		t.Errorf("Dist() = %f, expected 5", d)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{0.5, -1.0, 1.0, 0.5},
		{-1.5, -1.0, 1.0, -1.0},
		{1.5, -1.0, 1.0, 1.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestSignAbs(t *testing.T) {
	if Sign(-0.3) != -1 || Sign(0) != 1 || Sign(2) != 1 {
		t.Error("Sign should map negatives to -1 and the rest to +1")
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned wrong value")
	}
}
