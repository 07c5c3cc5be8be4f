package geometry

import "testing"

func TestNormalizeSymmetric(t *testing.T) {
	cases := []struct {
		name   string
		p1, p2 Point
		want   Rect
	}{
		{"down-right", Point{10, 20}, Point{110, 220}, Rect{10, 20, 110, 220}},
		{"up-left", Point{110, 220}, Point{10, 20}, Rect{10, 20, 110, 220}},
		{"down-left", Point{110, 20}, Point{10, 220}, Rect{10, 20, 110, 220}},
		{"up-right", Point{10, 220}, Point{110, 20}, Rect{10, 20, 110, 220}},
		{"same point", Point{5, 5}, Point{5, 5}, Rect{5, 5, 5, 5}},
		{"negative coords", Point{-1920, -30}, Point{-100, 400}, Rect{-1920, -30, -100, 400}},
		{"virtual screen extremes", Point{-32768, -32768}, Point{32767, 32767}, Rect{-32768, -32768, 32767, 32767}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.p1, tc.p2)
			if got != tc.want {
				t.Fatalf("Normalize(%v, %v) = %v, want %v", tc.p1, tc.p2, got, tc.want)
			}
			if swapped := Normalize(tc.p2, tc.p1); swapped != got {
				t.Fatalf("Normalize not symmetric: %v vs %v", got, swapped)
			}
			if got.Left > got.Right || got.Top > got.Bottom {
				t.Fatalf("Normalize produced unordered rect %v", got)
			}
		})
	}
}

func TestWidthHeight(t *testing.T) {
	r := Rect{Left: -10, Top: -20, Right: 30, Bottom: 5}
	if w := r.Width(); w != 40 {
		t.Errorf("Width() = %d, want 40", w)
	}
	if h := r.Height(); h != 25 {
		t.Errorf("Height() = %d, want 25", h)
	}
}

func TestTooSmall(t *testing.T) {
	cases := []struct {
		name string
		rect Rect
		want bool
	}{
		{"zero area", Rect{0, 0, 0, 0}, true},
		{"2x2", Rect{0, 0, 2, 2}, true},
		{"exactly 3x3", Rect{0, 0, 3, 3}, false},
		{"wide but short", Rect{0, 0, 100, 2}, true},
		{"tall but narrow", Rect{0, 0, 2, 100}, true},
		{"large", Rect{0, 0, 640, 480}, false},
		{"3x3 in negative space", Rect{-103, -53, -100, -50}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rect.TooSmall(MinSelectionPx, MinSelectionPx); got != tc.want {
				t.Errorf("TooSmall(%v) = %v, want %v", tc.rect, got, tc.want)
			}
		})
	}
}

func TestTooSmallCustomThreshold(t *testing.T) {
	r := Rect{0, 0, 9, 9}
	if r.TooSmall(9, 9) {
		t.Errorf("9x9 rect should meet a 9x9 minimum")
	}
	if !r.TooSmall(10, 10) {
		t.Errorf("9x9 rect should fail a 10x10 minimum")
	}
}
