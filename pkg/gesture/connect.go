package gesture

import (
	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/geom"
	"github.com/futurita/flowbox/pkg/route"
)

// connectController is the connector create/rewire state machine. It is
// owned by a Session and active only while the session is in
// StateConnecting.
//
// Creating and rewiring share the machine: a rewire fixes the connector's
// unmoved endpoint and lets the other end follow the pointer, subject to
// the same duplicate and self-loop checks on completion.
type connectController struct {
	fixedNode string
	fixedSide geom.Side

	rewire      bool
	connectorID string
	movedEnd    board.End

	before  board.Snapshot
	preview route.Path
	snapped bool
	target  Hit
}

// start begins a connection gesture from a node anchor.
func (c *connectController) start(s *Session, nodeID string, side geom.Side, p geom.Point) bool {
	if _, ok := s.board.Node(nodeID); !ok {
		return false
	}
	*c = connectController{
		fixedNode: nodeID,
		fixedSide: side,
		before:    s.board.Snapshot(),
	}
	c.update(s, p)
	return true
}

// startRewire begins a rewiring gesture on an existing connector. The end
// under the pointer becomes the moved end; the other stays fixed.
func (c *connectController) startRewire(s *Session, connectorID string, end board.End, p geom.Point) bool {
	con, ok := s.board.Connector(connectorID)
	if !ok {
		return false
	}
	fixedNode, fixedSide := con.From, con.FromSide
	if end == board.EndFrom {
		fixedNode, fixedSide = con.To, con.ToSide
	}
	*c = connectController{
		fixedNode:   fixedNode,
		fixedSide:   fixedSide,
		rewire:      true,
		connectorID: connectorID,
		movedEnd:    end,
		before:      s.board.Snapshot(),
	}
	c.update(s, p)
	return true
}

// move follows the pointer: the preview endpoint snaps to a hovered anchor
// on another node, or tracks the raw pointer otherwise.
func (c *connectController) move(s *Session, p geom.Point) {
	c.update(s, p)
}

func (c *connectController) update(s *Session, p geom.Point) {
	bp := s.toBoard(p)
	hover := HoverAnchor(s.board, bp)
	valid := hover.Kind == HitAnchor && hover.NodeID != c.fixedNode

	fixed, ok := s.board.Node(c.fixedNode)
	if !ok {
		c.preview, c.snapped, c.target = route.Path{}, false, Hit{}
		return
	}

	if valid {
		// Snapped: preview exactly the path the committed connector
		// would take.
		targetNode, _ := s.board.Node(hover.NodeID)
		if c.rewire && c.movedEnd == board.EndFrom {
			c.preview = route.Route(targetNode, hover.Side, fixed, c.fixedSide)
		} else {
			c.preview = route.Route(fixed, c.fixedSide, targetNode, hover.Side)
		}
		c.snapped = true
		c.target = hover
		return
	}

	start := fixed.Anchor(c.fixedSide)
	c.preview = route.Path{
		Points: []geom.Point{start, bp},
		Label:  geom.Point{X: (start.X + bp.X) / 2, Y: (start.Y + bp.Y) / 2},
	}
	c.snapped = false
	c.target = Hit{}
}

// cancel discards the in-progress preview without touching the board or
// history.
func (c *connectController) cancel() {
	*c = connectController{}
}

// finish completes the gesture. Released over a valid anchor on a
// different node it commits the mutation with one history snapshot; any
// rejection simply dissolves the preview with no mutation and no history
// entry.
func (c *connectController) finish(s *Session, p geom.Point) {
	c.update(s, p)
	defer func() { *c = connectController{} }()

	if !c.snapped {
		return
	}

	var ok bool
	if c.rewire {
		ok = s.board.RewireConnector(c.connectorID, c.movedEnd, c.target.NodeID, c.target.Side)
	} else {
		ok = s.board.AddConnector(c.fixedNode, c.fixedSide, c.target.NodeID, c.target.Side, "") != nil
	}
	if !ok {
		return
	}
	s.commit(c.before)
	s.noteSuccess()
}
