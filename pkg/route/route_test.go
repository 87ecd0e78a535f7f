package route

import (
	"math"
	"testing"

	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/geom"
)

func processAt(x, y float64) *board.Node {
	return &board.Node{ID: "n", Kind: board.KindProcess, X: x, Y: y}
}

func TestRouteStraightWhenAligned(t *testing.T) {
	// Two process nodes in the same row: right anchor to left anchor is
	// horizontal within the node-height tolerance.
	a := processAt(0, 100)
	b := processAt(400, 100)

	p := Route(a, geom.SideRight, b, geom.SideLeft)
	if p.Curved {
		t.Fatal("aligned opposite anchors should route straight")
	}
	if len(p.Points) != 2 {
		t.Fatalf("straight path should have 2 points, got %d", len(p.Points))
	}
	want := geom.Point{X: (p.Start().X + p.End().X) / 2, Y: (p.Start().Y + p.End().Y) / 2}
	if p.Label != want {
		t.Errorf("straight label = %v, want midpoint %v", p.Label, want)
	}
}

func TestRouteStraightTolerance(t *testing.T) {
	a := processAt(0, 100)
	// Offset vertically by less than the min node height: still straight.
	b := processAt(400, 100+board.ProcessMinHeight-1)
	if p := Route(a, geom.SideRight, b, geom.SideLeft); p.Curved {
		t.Error("offset within tolerance should stay straight")
	}
	// Offset past the tolerance: curved.
	c := processAt(400, 100+board.ProcessMinHeight*3)
	if p := Route(a, geom.SideRight, c, geom.SideLeft); !p.Curved {
		t.Error("offset past tolerance should curve")
	}
}

func TestRouteCurvedControlPoints(t *testing.T) {
	a := processAt(0, 0)
	b := processAt(400, 400)

	p := Route(a, geom.SideRight, b, geom.SideTop)
	if !p.Curved || len(p.Points) != 4 {
		t.Fatalf("expected a 4-point cubic, got curved=%v points=%d", p.Curved, len(p.Points))
	}

	start, c1, c2, end := p.Points[0], p.Points[1], p.Points[2], p.Points[3]
	if c1.X <= start.X || c1.Y != start.Y {
		t.Errorf("control 1 should extend rightward from the right anchor, got %v from %v", c1, start)
	}
	if c2.Y >= end.Y || c2.X != end.X {
		t.Errorf("control 2 should extend upward from the top anchor, got %v from %v", c2, end)
	}

	// Offset is capped.
	if dist := c1.X - start.X; dist > offsetCap {
		t.Errorf("control offset %v exceeds cap %v", dist, offsetCap)
	}
}

func TestRouteSameSideUCurve(t *testing.T) {
	// Two nodes side by side, connected bottom-to-bottom at close range:
	// the U depth must be forced even though the anchors are near.
	a := processAt(0, 100)
	b := processAt(60, 100)

	p := Route(a, geom.SideBottom, b, geom.SideBottom)
	if !p.Curved {
		t.Fatal("same-side anchors must always curve")
	}
	depth := p.Points[1].Y - p.Points[0].Y
	if depth < minUDepth {
		t.Errorf("U depth = %v, want at least %v", depth, minUDepth)
	}
}

func TestRouteLabelAtParametricMidpoint(t *testing.T) {
	a := processAt(0, 0)
	b := processAt(400, 400)

	p := Route(a, geom.SideBottom, b, geom.SideLeft)
	if !p.Curved {
		t.Fatal("expected a curved path")
	}
	want := cubicAt(p.Points[0], p.Points[1], p.Points[2], p.Points[3], 0.5)
	if p.Label != want {
		t.Errorf("label = %v, want curve midpoint %v", p.Label, want)
	}
	// The curve midpoint is not the straight chord midpoint here.
	chord := geom.Point{X: (p.Start().X + p.End().X) / 2, Y: (p.Start().Y + p.End().Y) / 2}
	if math.Abs(want.X-chord.X) < 1e-9 && math.Abs(want.Y-chord.Y) < 1e-9 {
		t.Error("expected the parametric midpoint to differ from the chord midpoint")
	}
}

func TestRouteDeterministic(t *testing.T) {
	a := processAt(0, 0)
	b := processAt(300, 500)
	p1 := Route(a, geom.SideRight, b, geom.SideTop)
	p2 := Route(a, geom.SideRight, b, geom.SideTop)
	if len(p1.Points) != len(p2.Points) {
		t.Fatal("routing should be deterministic")
	}
	for i := range p1.Points {
		if p1.Points[i] != p2.Points[i] {
			t.Errorf("point %d differs: %v vs %v", i, p1.Points[i], p2.Points[i])
		}
	}
}

func TestFlatten(t *testing.T) {
	a := processAt(0, 0)
	b := processAt(400, 400)

	straight := Path{Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}}
	if got := straight.Flatten(16); len(got) != 2 {
		t.Errorf("straight Flatten should return the points as-is, got %d", len(got))
	}

	curved := Route(a, geom.SideBottom, b, geom.SideBottom)
	pts := curved.Flatten(16)
	if len(pts) != 17 {
		t.Fatalf("Flatten(16) should yield 17 points, got %d", len(pts))
	}
	if pts[0] != curved.Start() || pts[16] != curved.End() {
		t.Error("flattened polyline must keep the exact endpoints")
	}
}
