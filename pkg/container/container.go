// Package container owns the ordered collection of boards that makes up
// one project. Each board gets its own editor session (router, history,
// gesture controllers); the container adds, clones, and deletes boards and
// persists the whole collection as one unit through a key-value store.
//
// Persistence fires on every structural change (add, clone, delete) and,
// via each session's commit hook, on every completed drag, connection,
// undo, and redo — always exactly once per logical operation.
package container

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/futurita/flowbox/pkg/board"
	flowerrors "github.com/futurita/flowbox/pkg/errors"
	"github.com/futurita/flowbox/pkg/gesture"
	"github.com/futurita/flowbox/pkg/store"
)

// DefaultKey is the store key a project's board set is saved under.
const DefaultKey = "boards"

// formatVersion is bumped when the serialized board-set layout changes.
const formatVersion = 1

// Entry pairs a board with its editor session. The session is the only
// mutation path for the board while it lives in a container.
type Entry struct {
	Board   *board.Board
	Session *gesture.Session
}

// Options configures a container.
type Options struct {
	Canvas     gesture.Canvas
	HistoryCap int
	Logger     *log.Logger
	Key        string
}

// Container is the ordered board list plus its persistence wiring. Like
// the rest of the engine it is single-threaded: all methods must be called
// from the UI goroutine.
type Container struct {
	ctx    context.Context
	store  store.Store
	key    string
	canvas gesture.Canvas
	cap    int
	logger *log.Logger

	entries []*Entry
	active  int // index into entries, -1 when the list is empty
}

// boardSet is the serialized form of the whole container.
type boardSet struct {
	Version int            `json:"version"`
	Active  string         `json:"active,omitempty"`
	Boards  []*board.Board `json:"boards"`
}

// New creates an empty container persisting through st. The container
// starts in the explicit "no boards" state; call Load to restore a saved
// set or AddBoard to start fresh.
func New(ctx context.Context, st store.Store, opts Options) *Container {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Container{
		ctx:    ctx,
		store:  st,
		key:    opts.Key,
		canvas: opts.Canvas,
		cap:    opts.HistoryCap,
		logger: opts.Logger,
		active: -1,
	}
}

// Load restores the persisted board set. A missing key is not an error:
// the container simply stays empty.
func (c *Container) Load() error {
	data, err := c.store.Load(c.ctx, c.key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return flowerrors.Wrap(flowerrors.ErrCodeStore, err, "load board set")
	}

	var set boardSet
	if err := json.Unmarshal(data, &set); err != nil {
		return flowerrors.Wrap(flowerrors.ErrCodeStore, err, "decode board set")
	}

	c.entries = c.entries[:0]
	c.active = -1
	for _, b := range set.Boards {
		c.adopt(b)
	}
	for i, e := range c.entries {
		if e.Board.ID == set.Active {
			c.active = i
		}
	}
	if c.active == -1 && len(c.entries) > 0 {
		c.active = 0
	}
	c.logger.Debug("board set loaded", "boards", len(c.entries))
	return nil
}

// AddBoard creates an empty board, appends it to the list, makes it
// active, and persists the set.
func (c *Container) AddBoard(title string) *Entry {
	if title == "" {
		title = fmt.Sprintf("Board %d", len(c.entries)+1)
	}
	e := c.adopt(board.New(title))
	c.active = len(c.entries) - 1
	c.persist()
	return e
}

// AddBoardFrom creates a board from a supplied snapshot, with freshly
// generated IDs for every node, connector, and section, then appends and
// persists like AddBoard.
func (c *Container) AddBoardFrom(title string, snap board.Snapshot) *Entry {
	src := board.New(title)
	src.Restore(snap)
	src.PruneOrphans()
	fresh := src.Clone()
	fresh.Title = title
	e := c.adopt(fresh)
	c.active = len(c.entries) - 1
	c.persist()
	return e
}

// CloneBoard deep-copies the target board with new IDs and appends the
// copy as a new board. Returns ErrCodeBoardNotFound for unknown IDs.
func (c *Container) CloneBoard(id string) (*Entry, error) {
	src, err := c.find(id)
	if err != nil {
		return nil, err
	}
	cp := src.Board.Clone()
	cp.Title = src.Board.Title + " (copy)"
	e := c.adopt(cp)
	c.active = len(c.entries) - 1
	c.persist()
	return e, nil
}

// DeleteBoard removes the board. When the list becomes empty the
// container enters the explicit "no boards" state; it never silently
// recreates a board. Deleting the active board activates its predecessor.
func (c *Container) DeleteBoard(id string) error {
	idx := -1
	for i, e := range c.entries {
		if e.Board.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return flowerrors.New(flowerrors.ErrCodeBoardNotFound, "no board with id %s", id)
	}
	if e := c.ActiveEntry(); e != nil && e.Session.Active() {
		return flowerrors.New(flowerrors.ErrCodeGestureActive, "cannot delete boards while a gesture is active")
	}

	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	switch {
	case len(c.entries) == 0:
		c.active = -1
	case c.active >= idx && c.active > 0:
		c.active--
	}
	c.persist()
	return nil
}

// SetActive switches the active board. Switching is refused while a
// gesture is in progress on the current board.
func (c *Container) SetActive(id string) error {
	if e := c.ActiveEntry(); e != nil && e.Session.Active() {
		return flowerrors.New(flowerrors.ErrCodeGestureActive, "cannot switch boards while a gesture is active")
	}
	for i, e := range c.entries {
		if e.Board.ID == id {
			c.active = i
			c.persist()
			return nil
		}
	}
	return flowerrors.New(flowerrors.ErrCodeBoardNotFound, "no board with id %s", id)
}

// ActiveEntry returns the active board's entry, or nil in the "no boards"
// state.
func (c *Container) ActiveEntry() *Entry {
	if c.active < 0 || c.active >= len(c.entries) {
		return nil
	}
	return c.entries[c.active]
}

// Entries returns the ordered board list. Treat it as read-only.
func (c *Container) Entries() []*Entry { return c.entries }

// Len returns the number of boards.
func (c *Container) Len() int { return len(c.entries) }

// Empty reports whether the container is in the "no boards" state.
func (c *Container) Empty() bool { return len(c.entries) == 0 }

// Find returns the entry for a board ID.
func (c *Container) Find(id string) (*Entry, error) { return c.find(id) }

// Persist forces a save of the whole board set. Sessions call this
// through their commit hooks; it is also available to the UI for explicit
// saves.
func (c *Container) Persist() error { return c.persist() }

func (c *Container) find(id string) (*Entry, error) {
	for _, e := range c.entries {
		if e.Board.ID == id {
			return e, nil
		}
	}
	return nil, flowerrors.New(flowerrors.ErrCodeBoardNotFound, "no board with id %s", id)
}

// adopt wraps a board in a session wired to persist through this
// container and appends it to the list.
func (c *Container) adopt(b *board.Board) *Entry {
	sess := gesture.NewSession(b, c.canvas, c.cap)
	sess.OnCommit(func() {
		if err := c.persist(); err != nil {
			c.logger.Error("persist after commit", "err", err)
		}
	})
	sess.Flush()
	e := &Entry{Board: b, Session: sess}
	c.entries = append(c.entries, e)
	return e
}

func (c *Container) persist() error {
	set := boardSet{Version: formatVersion, Boards: make([]*board.Board, len(c.entries))}
	for i, e := range c.entries {
		set.Boards[i] = e.Board
	}
	if e := c.ActiveEntry(); e != nil {
		set.Active = e.Board.ID
	}
	data, err := json.Marshal(set)
	if err != nil {
		return flowerrors.Wrap(flowerrors.ErrCodeInternal, err, "encode board set")
	}
	if err := c.store.Save(c.ctx, c.key, data); err != nil {
		return flowerrors.Wrap(flowerrors.ErrCodeStore, err, "save board set")
	}
	return nil
}
