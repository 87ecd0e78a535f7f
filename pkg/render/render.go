// Package render defines the surface interface the editor core draws
// through. The core never touches a concrete canvas: it hands nodes,
// routed connector paths, and the in-flight connection preview to a
// Surface, which maps them onto whatever medium it owns (an SVG document,
// a terminal grid). Pointer events travel the opposite direction, from
// the surface into the gesture session, keyed to node and anchor identity.
//
// Keeping the surface behind an interface is what makes the routing and
// gesture logic testable headlessly.
package render

import (
	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/gesture"
	"github.com/futurita/flowbox/pkg/route"
)

// Surface is a drawing target for one board.
type Surface interface {
	// DrawNode draws a node at its current position and effective size.
	DrawNode(n *board.Node)

	// DrawPath draws a routed connector path with its label.
	DrawPath(c *board.Connector, p route.Path)

	// DrawSection draws a section band.
	DrawSection(s *board.Section)

	// DrawPreview draws the dashed preview of an in-flight connection
	// gesture. snapped marks the endpoint as locked onto a valid target.
	DrawPreview(p route.Path, snapped bool)
}

// Draw renders a session's board onto a surface: flush consistency work
// (orphan pruning, dirty path recompute), then sections, nodes, connector
// paths, and finally the gesture preview. Drawing the same state twice
// produces identical output — Draw mutates nothing once the flush has
// settled.
func Draw(sess *gesture.Session, s Surface) {
	sess.Flush()
	b := sess.Board()

	for _, sec := range b.Sections() {
		s.DrawSection(sec)
	}
	for _, n := range b.Nodes() {
		s.DrawNode(n)
	}
	for _, c := range b.Connectors() {
		if p, ok := sess.Router().Path(c.ID); ok {
			s.DrawPath(c, p)
		}
	}
	if p, snapped, ok := sess.Preview(); ok {
		s.DrawPreview(p, snapped)
	}
}
