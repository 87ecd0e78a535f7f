package route

import (
	"github.com/futurita/flowbox/pkg/board"
)

// Router caches computed paths per connector and recomputes them
// incrementally as the board marks connectors dirty. One Router serves one
// board; the container creates a fresh Router per board.
//
// Recompute is triggered by node moves (affected connectors only), node
// resizes, zoom changes, and full board loads — all of which funnel through
// the board's dirty set.
type Router struct {
	paths map[string]Path
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{paths: make(map[string]Path)}
}

// Sync drains the board's dirty connector set and recomputes just those
// paths. Connectors that vanished since the last sync (deleted or pruned)
// are dropped from the cache. Returns the IDs that were recomputed.
func (r *Router) Sync(b *board.Board) []string {
	ids := b.TakeDirty()
	for _, id := range ids {
		c, ok := b.Connector(id)
		if !ok {
			delete(r.paths, id)
			continue
		}
		r.recompute(b, c)
	}
	r.sweep(b)
	return ids
}

// SyncAll recomputes every connector path from scratch. Used on full board
// load and zoom change.
func (r *Router) SyncAll(b *board.Board) {
	b.MarkAllDirty()
	r.Sync(b)
}

// Path returns the cached path for a connector and true, or a zero Path
// and false if the connector has not been routed yet.
func (r *Router) Path(connectorID string) (Path, bool) {
	p, ok := r.paths[connectorID]
	return p, ok
}

// Len returns the number of cached paths.
func (r *Router) Len() int { return len(r.paths) }

func (r *Router) recompute(b *board.Board, c *board.Connector) {
	from, okFrom := b.Node(c.From)
	to, okTo := b.Node(c.To)
	if !okFrom || !okTo {
		// Orphan: the prune pass will remove the connector; drop the path.
		delete(r.paths, c.ID)
		return
	}
	r.paths[c.ID] = Route(from, c.FromSide, to, c.ToSide)
}

// sweep drops cached paths whose connectors no longer exist on the board.
func (r *Router) sweep(b *board.Board) {
	if len(r.paths) == b.ConnectorCount() {
		return
	}
	live := make(map[string]struct{}, b.ConnectorCount())
	for _, c := range b.Connectors() {
		live[c.ID] = struct{}{}
	}
	for id := range r.paths {
		if _, ok := live[id]; !ok {
			delete(r.paths, id)
		}
	}
}
