// Package gesture implements the pointer-driven interaction layer of the
// editor: the drag and connection state machines, the hit-test dispatcher
// that routes pointer-downs to exactly one of them, and the EditorSession
// that ties a board, its router, and its history together.
//
// # Gestures
//
// A gesture is one pointer-down → pointer-up sequence owned by a single
// controller. The session is an explicit state machine
// (Idle → Dragging → Idle, Idle → Connecting → Idle); a pointer-down while
// a gesture is active is ignored rather than queued, and switching boards
// is refused mid-gesture. Within one gesture exactly one history snapshot
// and one persistence write occur, both after the mutation completes.
//
// # Rejections
//
// Duplicate connectors, self-loops, and gestures started while another is
// active are silent no-ops: they are normal interactive exploration, not
// errors, so nothing is logged at error level and no history entry is made.
package gesture

import (
	"time"

	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/geom"
	"github.com/futurita/flowbox/pkg/history"
	"github.com/futurita/flowbox/pkg/route"
)

// State is the session's gesture state.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateConnecting
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateConnecting:
		return "connecting"
	default:
		return "idle"
	}
}

// Canvas bounds the positions nodes can occupy. Nodes are clamped so their
// whole bounding box stays inside [0, W] × [0, H].
type Canvas struct {
	W, H float64
}

// DefaultCanvas matches the editor's default scrollable area.
var DefaultCanvas = Canvas{W: 3000, H: 2000}

// Session owns one active board and its gesture controllers. It is the
// single entry point for pointer events coming from a rendering surface
// and for the editing operations the UI exposes (add/delete node, undo,
// zoom, ...). All methods must be called from the UI goroutine; the engine
// is single-threaded by design.
type Session struct {
	board  *board.Board
	router *route.Router
	hist   *history.History
	canvas Canvas

	state State
	drag  dragController
	conn  connectController

	// onCommit runs after every completed mutation, once per logical
	// operation. The container uses it to persist the board set.
	onCommit func()

	// now is the clock used for drag re-route throttling.
	now func() time.Time

	noticeAt time.Time
	notice   string
}

// noticeTTL is how long the brief success indicator stays visible.
const noticeTTL = 1500 * time.Millisecond

func (s *Session) noteSuccess() {
	s.notice = "connected"
	s.noticeAt = s.now()
}

// Notice returns the transient success indicator text, if one is still
// fresh. Surfaces render it for a moment after a connector is created.
func (s *Session) Notice() (string, bool) {
	if s.notice == "" || s.now().Sub(s.noticeAt) > noticeTTL {
		return "", false
	}
	return s.notice, true
}

// NewSession creates a session for the board with a fresh router and
// history. historyCap ≤ 0 selects the default cap.
func NewSession(b *board.Board, canvas Canvas, historyCap int) *Session {
	if canvas.W <= 0 || canvas.H <= 0 {
		canvas = DefaultCanvas
	}
	return &Session{
		board:  b,
		router: route.NewRouter(),
		hist:   history.New(historyCap),
		canvas: canvas,
		now:    time.Now,
	}
}

// OnCommit registers the callback invoked after each completed operation.
func (s *Session) OnCommit(fn func()) { s.onCommit = fn }

// SetClock replaces the throttle clock. Tests inject a fake clock here.
func (s *Session) SetClock(now func() time.Time) { s.now = now }

// Board returns the session's board.
func (s *Session) Board() *board.Board { return s.board }

// Router returns the session's connector router.
func (s *Session) Router() *route.Router { return s.router }

// History returns the session's undo/redo history.
func (s *Session) History() *history.History { return s.hist }

// State returns the current gesture state.
func (s *Session) State() State { return s.state }

// Active reports whether a gesture is in progress.
func (s *Session) Active() bool { return s.state != StateIdle }

// Flush performs the per-render-pass consistency work: prune orphaned
// connectors and recompute dirty paths. Rendering the same state twice
// flushes to identical paths, keeping renders idempotent.
func (s *Session) Flush() {
	s.board.PruneOrphans()
	s.router.Sync(s.board)
}

// PointerDown routes a pointer press to exactly one controller based on
// the hit element. Presses while a gesture is active, and presses that hit
// nothing actionable, are ignored.
func (s *Session) PointerDown(hit Hit, p geom.Point) {
	if s.state != StateIdle {
		return
	}
	switch hit.Kind {
	case HitHandle:
		if s.drag.start(s, hit.NodeID, p) {
			s.state = StateDragging
		}
	case HitAnchor:
		if s.conn.start(s, hit.NodeID, hit.Side, p) {
			s.state = StateConnecting
		}
	case HitConnectorEnd:
		if s.conn.startRewire(s, hit.ConnectorID, hit.End, p) {
			s.state = StateConnecting
		}
	}
}

// PointerMove feeds a pointer movement to the active controller.
// Ignored when no gesture is active.
func (s *Session) PointerMove(p geom.Point) {
	switch s.state {
	case StateDragging:
		s.drag.move(s, p)
	case StateConnecting:
		s.conn.move(s, p)
	}
}

// PointerUp completes the active gesture. Releasing always commits: a drag
// commits its last valid position, a connection commits if released over a
// valid target anchor and evaporates otherwise.
func (s *Session) PointerUp(p geom.Point) {
	switch s.state {
	case StateDragging:
		s.drag.finish(s, p)
	case StateConnecting:
		s.conn.finish(s, p)
	}
	s.state = StateIdle
}

// Cancel discards an in-progress connection preview without mutating the
// graph or touching history. A drag in progress commits its current
// position instead, since drags have no abort path.
func (s *Session) Cancel() {
	switch s.state {
	case StateConnecting:
		s.conn.cancel()
	case StateDragging:
		s.drag.finish(s, s.drag.last)
	}
	s.state = StateIdle
}

// Preview returns the dashed preview path of an in-flight connection
// gesture and whether its endpoint is snapped to a valid target anchor.
// ok is false when no connection gesture is active.
func (s *Session) Preview() (path route.Path, snapped bool, ok bool) {
	if s.state != StateConnecting {
		return route.Path{}, false, false
	}
	return s.conn.preview, s.conn.snapped, true
}

// commit finishes one logical operation: push the pre-mutation snapshot,
// recompute affected paths, and persist.
func (s *Session) commit(before board.Snapshot) {
	s.hist.Push(before)
	s.router.Sync(s.board)
	if s.onCommit != nil {
		s.onCommit()
	}
}

// =============================================================================
// Editing operations — non-gestural mutations exposed to the UI
// =============================================================================

// AddNode creates a node and records the operation in history.
func (s *Session) AddNode(kind string, x, y float64) *board.Node {
	before := s.board.Snapshot()
	n := s.board.AddNode(kind, x, y)
	s.commit(before)
	return n
}

// DeleteNode removes a node and its connectors as one undoable step.
func (s *Session) DeleteNode(id string) bool {
	before := s.board.Snapshot()
	if !s.board.RemoveNode(id) {
		return false
	}
	s.commit(before)
	return true
}

// DeleteConnector removes a connector as one undoable step.
func (s *Session) DeleteConnector(id string) bool {
	before := s.board.Snapshot()
	if !s.board.RemoveConnector(id) {
		return false
	}
	s.commit(before)
	return true
}

// SetConnectorLabel updates a connector label as one undoable step.
func (s *Session) SetConnectorLabel(id, text string) bool {
	before := s.board.Snapshot()
	if !s.board.UpdateConnectorLabel(id, text) {
		return false
	}
	s.commit(before)
	return true
}

// SetNodeLabel updates a node label as one undoable step.
func (s *Session) SetNodeLabel(id, text string) bool {
	before := s.board.Snapshot()
	if !s.board.SetNodeLabel(id, text) {
		return false
	}
	s.commit(before)
	return true
}

// AddSection appends a section band below existing content.
func (s *Session) AddSection(height float64) *board.Section {
	before := s.board.Snapshot()
	sec := s.board.AddSection(height)
	if sec == nil {
		return nil
	}
	s.commit(before)
	return sec
}

// RemoveSection deletes a section as one undoable step.
func (s *Session) RemoveSection(id string) bool {
	before := s.board.Snapshot()
	if !s.board.RemoveSection(id) {
		return false
	}
	s.commit(before)
	return true
}

// SetZoom updates the zoom factor. Zoom is canvas state, not graph state,
// so it is persisted but not undoable; every path is recomputed since
// anchor positions change on the surface.
func (s *Session) SetZoom(z float64) bool {
	if !s.board.SetZoom(z) {
		return false
	}
	s.router.Sync(s.board)
	if s.onCommit != nil {
		s.onCommit()
	}
	return true
}

// Undo steps the board back one operation and re-routes everything.
// No-op when the undo stack is empty or a gesture is active.
func (s *Session) Undo() bool {
	if s.state != StateIdle || !s.hist.Undo(s.board) {
		return false
	}
	s.router.Sync(s.board)
	if s.onCommit != nil {
		s.onCommit()
	}
	return true
}

// Redo steps the board forward one undone operation.
// No-op when the redo stack is empty or a gesture is active.
func (s *Session) Redo() bool {
	if s.state != StateIdle || !s.hist.Redo(s.board) {
		return false
	}
	s.router.Sync(s.board)
	if s.onCommit != nil {
		s.onCommit()
	}
	return true
}

// ReplaceState swaps in externally produced graph state (a file import) as
// one undoable step. The snapshot is pushed before replacement, so the
// import itself can be undone.
func (s *Session) ReplaceState(snap board.Snapshot) {
	before := s.board.Snapshot()
	s.board.Restore(snap)
	s.board.PruneOrphans()
	s.commit(before)
}
