package gesture

import (
	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/geom"
	"github.com/futurita/flowbox/pkg/route"
)

// HitKind classifies what a pointer-down landed on. The dispatcher routes
// the event to exactly one controller based on this classification, so two
// gestures can never start from the same press.
type HitKind int

const (
	HitNone         HitKind = iota
	HitHandle               // a node's drag handle: starts a drag
	HitAnchor               // a node's connection anchor: starts a connection
	HitConnectorEnd         // an endpoint of an existing connector: starts a rewire
)

// Hit describes the element under a pointer-down, keyed to node or
// connector identity the way the rendering surface reports it.
type Hit struct {
	Kind        HitKind
	NodeID      string
	Side        geom.Side
	ConnectorID string
	End         board.End // which connector endpoint, for rewiring
}

// Hit test radii, in board coordinates.
const (
	anchorRadius = 10.0
	handleDepth  = 16.0 // drag handle strip along the top edge of a node
)

// HitTest classifies a board-coordinate point against the board's elements.
// Surfaces that track element identity natively (SVG, DOM-like) can build
// Hits directly; the terminal surface uses this shared fallback.
//
// Anchors win over drag handles, and connector endpoints are checked before
// node anchors they overlap, matching the editor's stacking order. The drag
// handle is the strip along a node's top edge, not the node body: clicking
// the body selects without dragging.
func HitTest(b *board.Board, r *route.Router, p geom.Point) Hit {
	// Endpoints of existing connectors, for rewiring.
	for i := len(b.Connectors()) - 1; i >= 0; i-- {
		c := b.Connectors()[i]
		path, ok := r.Path(c.ID)
		if !ok {
			continue
		}
		if p.Dist(path.Start()) <= anchorRadius {
			return Hit{Kind: HitConnectorEnd, ConnectorID: c.ID, End: board.EndFrom}
		}
		if p.Dist(path.End()) <= anchorRadius {
			return Hit{Kind: HitConnectorEnd, ConnectorID: c.ID, End: board.EndTo}
		}
	}

	// Topmost node first.
	for i := len(b.Nodes()) - 1; i >= 0; i-- {
		n := b.Nodes()[i]
		if side, ok := anchorAt(n, p); ok {
			return Hit{Kind: HitAnchor, NodeID: n.ID, Side: side}
		}
		bounds := n.Bounds()
		handle := geom.Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: handleDepth}
		if handle.Contains(p) {
			return Hit{Kind: HitHandle, NodeID: n.ID}
		}
	}
	return Hit{Kind: HitNone}
}

// anchorAt returns the side whose anchor point is within radius of p.
func anchorAt(n *board.Node, p geom.Point) (geom.Side, bool) {
	for _, s := range []geom.Side{geom.SideTop, geom.SideRight, geom.SideBottom, geom.SideLeft} {
		if p.Dist(n.Anchor(s)) <= anchorRadius {
			return s, true
		}
	}
	return geom.SideTop, false
}

// HoverAnchor finds a connection target for an in-flight connection
// gesture: the anchor of any node within radius of p. Returns the zero Hit
// when the pointer is not over an anchor.
func HoverAnchor(b *board.Board, p geom.Point) Hit {
	for i := len(b.Nodes()) - 1; i >= 0; i-- {
		n := b.Nodes()[i]
		if side, ok := anchorAt(n, p); ok {
			return Hit{Kind: HitAnchor, NodeID: n.ID, Side: side}
		}
	}
	return Hit{Kind: HitNone}
}
