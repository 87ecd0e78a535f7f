// Package geom provides the small geometric vocabulary shared by the board
// model, the connector router, and the gesture controllers: points, rects,
// and the four attachment sides of a node.
package geom

import "math"

// Point is a 2D coordinate on the board canvas.
// The origin is the top-left corner; y grows downward.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns the point translated by dx, dy.
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Dist returns the Euclidean distance to q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned bounding box identified by its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside the rect (inclusive edges).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Side identifies one of the four attachment sides of a node's bounding box.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// sideNames maps sides to their long names used in logs and DOT output.
var sideNames = [...]string{"top", "right", "bottom", "left"}

// sidePorts maps sides to the single-letter port codes used in board files.
var sidePorts = [...]string{"t", "r", "b", "l"}

// String returns the long name of the side ("top", "right", "bottom", "left").
func (s Side) String() string {
	if s < SideTop || s > SideLeft {
		return "unknown"
	}
	return sideNames[s]
}

// Port returns the single-letter port code used in the board file format.
func (s Side) Port() string {
	if s < SideTop || s > SideLeft {
		return ""
	}
	return sidePorts[s]
}

// Horizontal reports whether the side faces left or right.
func (s Side) Horizontal() bool {
	return s == SideLeft || s == SideRight
}

// ParsePort converts a port code ("t", "r", "b", "l") back to a Side.
// The second return value is false for unrecognized codes.
func ParsePort(code string) (Side, bool) {
	for i, p := range sidePorts {
		if p == code {
			return Side(i), true
		}
	}
	return SideTop, false
}

// Anchor returns the attachment point for a side of the bounding box: the
// midpoint of that side's edge, with zero outward offset. Connectors touch
// the node boundary exactly.
func Anchor(r Rect, s Side) Point {
	switch s {
	case SideTop:
		return Point{X: r.X + r.W/2, Y: r.Y}
	case SideRight:
		return Point{X: r.X + r.W, Y: r.Y + r.H/2}
	case SideBottom:
		return Point{X: r.X + r.W/2, Y: r.Y + r.H}
	default:
		return Point{X: r.X, Y: r.Y + r.H/2}
	}
}

// Clamp limits v to the closed interval [lo, hi].
// If hi < lo (a node larger than the canvas), lo wins.
func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
