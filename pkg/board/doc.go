// Package board implements the diagram graph model: nodes, connectors, and
// sections for a single board, plus the invariant checks that keep them
// consistent.
//
// # Model
//
// A board owns three collections:
//
//   - Nodes: positioned elements of kind "process", "decision", or "start".
//     Process nodes grow to fit their label (140×44 minimum); decision and
//     start nodes have fixed sizes that are never overridden.
//   - Connectors: directed links between node anchors (top/right/bottom/left).
//     Self-loops and duplicate (from, to, fromSide, toSide) tuples are
//     rejected silently, matching interactive editing semantics.
//   - Sections: horizontal bands appended below existing content, used as
//     rendering and scroll-target hints.
//
// # Mutations and re-routing
//
// Every structural mutation that can move a connector's endpoints marks the
// affected connectors dirty. The render loop drains the dirty set with
// [Board.TakeDirty] and asks the router to recompute just those paths, so a
// node drag re-routes only the connectors touching the dragged node.
//
// # Consistency
//
// RemoveNode cascades to the connectors referencing the node in the same
// logical step, so no transient orphan is ever rendered. Orphans that arise
// anyway (for example from an imported file referencing missing nodes) are
// swept by [Board.PruneOrphans] on every render pass rather than treated as
// errors.
//
// Boards are not safe for concurrent use; the editor engine is
// single-threaded and event-driven.
package board
