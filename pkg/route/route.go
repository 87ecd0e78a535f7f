// Package route computes the visual paths of connectors between node
// anchors. The router is deterministic and search-free: anchors that are
// nearly collinear on the dominant axis get a straight line, everything
// else gets a short cubic Bezier whose control points extend outward from
// each anchor along its facing side. There is no obstacle avoidance.
package route

import (
	"math"

	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/geom"
)

// Curve shaping constants. The control offset scales with anchor distance
// up to a cap, which keeps short connectors gentle and long connectors from
// ballooning. Same-side pairs always bow out by at least the U depth.
const (
	offsetScale = 0.35
	offsetCap   = 60.0
	minUDepth   = 40.0
)

// Path is the drawable result of routing one connector.
//
// For a straight connector Points holds the two anchor points. For a curved
// connector Points holds the four cubic Bezier control points (start,
// control 1, control 2, end); the drawn path is the Bezier through them,
// not the polyline.
type Path struct {
	Points []geom.Point
	Curved bool
	Label  geom.Point // where the connector label is centered
}

// Start returns the first point of the path.
func (p Path) Start() geom.Point { return p.Points[0] }

// End returns the last point of the path.
func (p Path) End() geom.Point { return p.Points[len(p.Points)-1] }

// Route computes the path for a connector between two nodes. The anchor on
// each node is the midpoint of the given side's bounding-box edge.
func Route(from *board.Node, fromSide geom.Side, to *board.Node, toSide geom.Side) Path {
	a := from.Anchor(fromSide)
	b := to.Anchor(toSide)

	if fromSide != toSide && straightEnough(a, b, collinearTolerance(from, to)) {
		return Path{
			Points: []geom.Point{a, b},
			Label:  geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2},
		}
	}

	offset := math.Min(a.Dist(b)*offsetScale, offsetCap)
	if fromSide == toSide && offset < minUDepth {
		// Same-side anchors in the same row would otherwise produce an
		// inverted loop; force a pronounced U-curve.
		offset = minUDepth
	}

	c1 := controlPoint(a, fromSide, offset)
	c2 := controlPoint(b, toSide, offset)
	return Path{
		Points: []geom.Point{a, c1, c2, b},
		Curved: true,
		Label:  cubicAt(a, c1, c2, b, 0.5),
	}
}

// straightEnough reports whether the two anchors are nearly collinear on
// the dominant axis, within tol.
func straightEnough(a, b geom.Point, tol float64) bool {
	dx := math.Abs(b.X - a.X)
	dy := math.Abs(b.Y - a.Y)
	if dx >= dy {
		return dy <= tol
	}
	return dx <= tol
}

// collinearTolerance is the "node height precision" of the straight-line
// test: the smaller effective height of the two endpoint nodes.
func collinearTolerance(from, to *board.Node) float64 {
	_, fh := from.Size()
	_, th := to.Size()
	return math.Min(fh, th)
}

// controlPoint extends outward from the anchor along the side's normal.
func controlPoint(anchor geom.Point, side geom.Side, offset float64) geom.Point {
	switch side {
	case geom.SideTop:
		return anchor.Add(0, -offset)
	case geom.SideRight:
		return anchor.Add(offset, 0)
	case geom.SideBottom:
		return anchor.Add(0, offset)
	default:
		return anchor.Add(-offset, 0)
	}
}

// cubicAt evaluates the cubic Bezier through p0..p3 at parameter t using
// the Bernstein basis. The label sits at t=0.5, the true parametric
// midpoint of the drawn curve, not the naive midpoint of the anchors.
func cubicAt(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return geom.Point{
		X: b0*p0.X + b1*p1.X + b2*p2.X + b3*p3.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y + b3*p3.Y,
	}
}

// Flatten samples the path into a polyline with the given number of
// segments. Straight paths are returned as-is; curved paths are sampled
// uniformly in t. Surfaces without native Bezier support draw the polyline.
func (p Path) Flatten(segments int) []geom.Point {
	if !p.Curved || segments < 2 {
		return p.Points
	}
	a, c1, c2, b := p.Points[0], p.Points[1], p.Points[2], p.Points[3]
	out := make([]geom.Point, segments+1)
	for i := 0; i <= segments; i++ {
		out[i] = cubicAt(a, c1, c2, b, float64(i)/float64(segments))
	}
	return out
}
