package geom

import "testing"

func TestAnchorSides(t *testing.T) {
	r := Rect{X: 100, Y: 200, W: 40, H: 20}

	tests := []struct {
		side Side
		want Point
	}{
		{SideTop, Point{X: 120, Y: 200}},
		{SideRight, Point{X: 140, Y: 210}},
		{SideBottom, Point{X: 120, Y: 220}},
		{SideLeft, Point{X: 100, Y: 210}},
	}
	for _, tt := range tests {
		got := Anchor(r, tt.side)
		if got != tt.want {
			t.Errorf("Anchor(%v) = %v, want %v", tt.side, got, tt.want)
		}
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		code string
		want Side
		ok   bool
	}{
		{"t", SideTop, true},
		{"r", SideRight, true},
		{"b", SideBottom, true},
		{"l", SideLeft, true},
		{"x", SideTop, false},
		{"", SideTop, false},
	}
	for _, tt := range tests {
		got, ok := ParsePort(tt.code)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParsePort(%q) = %v, %v, want %v, %v", tt.code, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPortRoundTrip(t *testing.T) {
	for _, s := range []Side{SideTop, SideRight, SideBottom, SideLeft} {
		got, ok := ParsePort(s.Port())
		if !ok || got != s {
			t.Errorf("ParsePort(%q) = %v, %v, want %v", s.Port(), got, ok, s)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !r.Contains(Point{X: 5, Y: 5}) {
		t.Error("center should be inside")
	}
	if !r.Contains(Point{X: 0, Y: 0}) {
		t.Error("origin corner should be inside")
	}
	if r.Contains(Point{X: 11, Y: 5}) {
		t.Error("point past the right edge should be outside")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Errorf("Clamp(-5) = %v, want 0", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp(15) = %v, want 10", got)
	}
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5) = %v, want 5", got)
	}
}

func TestDist(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}
	if got := a.Dist(b); got != 5 {
		t.Errorf("Dist = %v, want 5", got)
	}
}
