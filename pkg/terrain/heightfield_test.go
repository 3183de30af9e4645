package terrain

import "testing"

func TestHeightFieldDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for _, p := range [][2]float64{{0, 0}, {17.5, -90.25}, {-350, 350}, {1234, 0.01}} {
		if a.At(p[0], p[1]) != b.At(p[0], p[1]) {
			t.Fatalf("elevation at (%v, %v) differs for the same seed", p[0], p[1])
		}
	}
}

func TestHeightFieldSeedsDiffer(t *testing.T) {
	a, b := New(1), New(2)
	same := 0
	for x := -200.0; x <= 200; x += 50 {
		if a.At(x, x) == b.At(x, x) {
			same++
		}
	}
	if same > 2 {
		t.Errorf("seeds 1 and 2 agree at %d of 9 sample points", same)
	}
}

func TestReliefRange(t *testing.T) {
	h := New(7)
	for x := -400.0; x <= 400; x += 37 {
		for z := -400.0; z <= 400; z += 41 {
			r := h.Relief(x, z)
			if r < 0 || r > 1 {
				t.Fatalf("relief %v at (%v, %v) outside [0, 1]", r, x, z)
			}
		}
	}
}

func TestElevationBounded(t *testing.T) {
	h := New(99)
	limit := baseAmplitude + detailAmplitude
	for x := -400.0; x <= 400; x += 53 {
		e := h.At(x, -x)
		if e < 0 || e > limit {
			t.Fatalf("elevation %v at x=%v outside [0, %v]", e, x, limit)
		}
	}
}
