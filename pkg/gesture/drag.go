package gesture

import (
	"math"
	"time"

	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/geom"
)

// rerouteInterval throttles live connector re-routing during a drag to
// roughly 30 fps. Moves inside the window mark a pending re-route that the
// next move outside the window (or the pointer-up) flushes, so the last
// position always gets routed.
const rerouteInterval = 33 * time.Millisecond

// dragController is the node-drag state machine. It is owned by a Session
// and active only while the session is in StateDragging.
type dragController struct {
	nodeID string
	offset geom.Point // pointer-to-node-origin offset, board coordinates
	last   geom.Point // last surface point, used when a cancel commits
	before board.Snapshot

	lastRoute time.Time
	pending   bool
}

// start captures the drag target and the pointer offset. Returns false if
// the node vanished between hit test and press.
func (d *dragController) start(s *Session, nodeID string, p geom.Point) bool {
	n, ok := s.board.Node(nodeID)
	if !ok {
		return false
	}
	bp := s.toBoard(p)
	d.nodeID = nodeID
	d.offset = geom.Point{X: bp.X - n.X, Y: bp.Y - n.Y}
	d.last = p
	d.before = s.board.Snapshot()
	d.lastRoute = s.now()
	d.pending = false
	return true
}

// move updates the node position from the raw pointer delta divided by the
// zoom factor, applies grid snapping and canvas clamping, and requests a
// throttled re-route of the connectors touching the node. The full board
// re-render is deferred until pointer-up.
func (d *dragController) move(s *Session, p geom.Point) {
	n, ok := s.board.Node(d.nodeID)
	if !ok {
		return
	}
	d.last = p
	bp := s.toBoard(p)
	x, y := s.snapPosition(n, bp.X-d.offset.X, bp.Y-d.offset.Y)
	s.board.MoveNode(d.nodeID, x, y)

	now := s.now()
	if now.Sub(d.lastRoute) >= rerouteInterval {
		s.router.Sync(s.board)
		d.lastRoute = now
		d.pending = false
	} else {
		d.pending = true
	}
}

// finish commits the last valid position, performs one full re-route, and
// pushes the single history snapshot for the whole drag session.
func (d *dragController) finish(s *Session, p geom.Point) {
	d.move(s, p)
	before := d.before
	*d = dragController{}
	s.commit(before)
}

// toBoard converts a raw surface point to board coordinates.
func (s *Session) toBoard(p geom.Point) geom.Point {
	z := s.board.Zoom
	if z <= 0 {
		z = board.DefaultZoom
	}
	return geom.Point{X: p.X / z, Y: p.Y / z}
}

// snapPosition applies grid snapping and canvas clamping to a candidate
// node position.
//
// With the grid enabled, the column is chosen by which side of the nearest
// boundary the node's center lies on, and the node is re-centered within
// that column; decision nodes always end up column-centered this way. The
// y coordinate snaps to the nearest row multiple. Positions are then
// clamped so the node stays inside the canvas.
func (s *Session) snapPosition(n *board.Node, x, y float64) (float64, float64) {
	w, h := n.Size()
	if s.board.GridEnabled && s.board.ColumnWidth > 0 {
		col := math.Floor((x + w/2) / s.board.ColumnWidth)
		if col < 0 {
			col = 0
		}
		x = col*s.board.ColumnWidth + (s.board.ColumnWidth-w)/2
	}
	if s.board.GridEnabled && s.board.GridSize > 0 {
		y = math.Round(y/s.board.GridSize) * s.board.GridSize
	}
	x = geom.Clamp(x, 0, s.canvas.W-w)
	y = geom.Clamp(y, 0, s.canvas.H-h)
	return x, y
}
