package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/config"
	"github.com/futurita/flowbox/pkg/container"
	"github.com/futurita/flowbox/pkg/geom"
	"github.com/futurita/flowbox/pkg/gesture"
	"github.com/futurita/flowbox/pkg/render"
	"github.com/futurita/flowbox/pkg/route"
)

// Terminal cells are taller than wide; one cell covers cellW × cellH board
// units so diagrams keep roughly square proportions on screen.
const (
	cellW = 8.0
	cellH = 16.0
)

// Editor styles
var (
	styleNode     = lipgloss.NewStyle().Foreground(colorWhite)
	styleNodeKind = lipgloss.NewStyle().Foreground(colorCyan)
	styleEdge     = lipgloss.NewStyle().Foreground(colorGray)
	stylePreview  = lipgloss.NewStyle().Foreground(colorBlue)
	styleSection  = lipgloss.NewStyle().Foreground(colorDim)
	styleStatus   = lipgloss.NewStyle().Foreground(colorGray)
	styleNotice   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// editorModel is the bubbletea model for the interactive board editor. It
// translates terminal mouse events into pointer gestures on the active
// board's session and rasterizes the board onto a cell grid each frame.
type editorModel struct {
	c   *container.Container
	cfg config.Config

	width, height int
	lastBoard     geom.Point // last pointer position in board coordinates
	status        string
}

func newEditorModel(c *container.Container, cfg config.Config) editorModel {
	return editorModel{c: c, cfg: cfg, width: 80, height: 24}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

// surfacePoint converts a terminal cell to the surface coordinate the
// session expects: board units scaled by the current zoom factor.
func (m editorModel) surfacePoint(x, y int) geom.Point {
	return geom.Point{X: float64(x) * cellW, Y: float64(y) * cellH}
}

func (m editorModel) updateMouse(msg tea.MouseMsg) editorModel {
	e := m.c.ActiveEntry()
	if e == nil {
		return m
	}
	sess := e.Session
	zoom := e.Board.Zoom
	ps := m.surfacePoint(msg.X, msg.Y)
	pb := geom.Point{X: ps.X / zoom, Y: ps.Y / zoom}
	m.lastBoard = pb

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		hit := gesture.HitTest(e.Board, sess.Router(), pb)
		sess.PointerDown(hit, ps)
	case tea.MouseActionMotion:
		sess.PointerMove(ps)
	case tea.MouseActionRelease:
		sess.PointerUp(ps)
	}
	return m
}

func (m editorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.c.ActiveEntry()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n":
		m.c.AddBoard("")
		m.status = "board added"
		return m, nil
	case "tab", "shift+tab":
		m.cycleBoard(msg.String() == "tab")
		return m, nil
	}

	if e == nil {
		return m, nil
	}
	sess := e.Session

	switch msg.String() {
	case "esc":
		sess.Cancel()
	case "p":
		sess.AddNode(board.KindProcess, m.lastBoard.X, m.lastBoard.Y)
		m.status = "process node added"
	case "d":
		sess.AddNode(board.KindDecision, m.lastBoard.X, m.lastBoard.Y)
		m.status = "decision node added"
	case "s":
		sess.AddNode(board.KindStart, m.lastBoard.X, m.lastBoard.Y)
		m.status = "start node added"
	case "S":
		if sess.AddSection(400) != nil {
			m.status = "section added"
		}
	case "x":
		if id, ok := nodeAt(e.Board, m.lastBoard); ok && sess.DeleteNode(id) {
			m.status = "node deleted"
		}
	case "u":
		if sess.Undo() {
			m.status = "undone"
		} else {
			m.status = "nothing to undo"
		}
	case "r":
		if sess.Redo() {
			m.status = "redone"
		} else {
			m.status = "nothing to redo"
		}
	case "+", "=":
		sess.SetZoom(e.Board.Zoom * 1.25)
	case "-":
		sess.SetZoom(e.Board.Zoom / 1.25)
	case "0":
		sess.SetZoom(1)
	}
	return m, nil
}

func (m *editorModel) cycleBoard(forward bool) {
	entries := m.c.Entries()
	active := m.c.ActiveEntry()
	if len(entries) < 2 || active == nil {
		return
	}
	idx := 0
	for i, e := range entries {
		if e == active {
			idx = i
		}
	}
	if forward {
		idx = (idx + 1) % len(entries)
	} else {
		idx = (idx - 1 + len(entries)) % len(entries)
	}
	if err := m.c.SetActive(entries[idx].Board.ID); err == nil {
		m.status = "switched to " + entries[idx].Board.Title
	}
}

// nodeAt returns the topmost node whose bounds contain p.
func nodeAt(b *board.Board, p geom.Point) (string, bool) {
	nodes := b.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Bounds().Contains(p) {
			return nodes[i].ID, true
		}
	}
	return "", false
}

func (m editorModel) View() string {
	canvasH := m.height - 2
	if canvasH < 3 {
		canvasH = 3
	}

	e := m.c.ActiveEntry()
	if e == nil {
		empty := StyleDim.Render("No boards. Press ") + StyleHighlight.Render("n") +
			StyleDim.Render(" to create one, ") + StyleHighlight.Render("q") + StyleDim.Render(" to quit.")
		pad := strings.Repeat("\n", canvasH/2)
		return pad + lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(empty)
	}

	surf := newTermSurface(m.width, canvasH, e.Board.Zoom)
	render.Draw(e.Session, surf)

	var b strings.Builder
	b.WriteString(surf.String())
	b.WriteString("\n")
	b.WriteString(m.statusLine(e))
	b.WriteString("\n")
	b.WriteString(styleStatus.Render("  p/d/s add node  S section  x delete  drag handle to move  drag anchor to connect  u/r undo/redo  +/- zoom  tab board  q quit"))
	return b.String()
}

func (m editorModel) statusLine(e *container.Entry) string {
	parts := []string{
		StyleTitle.Render(" " + e.Board.Title),
		styleStatus.Render(fmt.Sprintf("%d/%d boards", m.boardIndex(e)+1, m.c.Len())),
		styleStatus.Render(fmt.Sprintf("zoom %.0f%%", e.Board.Zoom*100)),
		styleStatus.Render(e.Session.State().String()),
	}
	if notice, ok := e.Session.Notice(); ok {
		parts = append(parts, styleNotice.Render(notice))
	}
	if m.status != "" {
		parts = append(parts, StyleDim.Render(m.status))
	}
	return strings.Join(parts, styleStatus.Render("  │  "))
}

func (m editorModel) boardIndex(e *container.Entry) int {
	for i, entry := range m.c.Entries() {
		if entry == e {
			return i
		}
	}
	return 0
}

// =============================================================================
// termSurface - cell-grid rendering target
// =============================================================================

// cell is one terminal character with its style.
type cell struct {
	r     rune
	style lipgloss.Style
}

// termSurface rasterizes a board onto a terminal cell grid. It implements
// render.Surface in board coordinates and applies the zoom factor while
// mapping to cells.
type termSurface struct {
	w, h  int
	zoom  float64
	cells []cell
}

func newTermSurface(w, h int, zoom float64) *termSurface {
	s := &termSurface{w: w, h: h, zoom: zoom, cells: make([]cell, w*h)}
	for i := range s.cells {
		s.cells[i] = cell{r: ' '}
	}
	return s
}

var _ render.Surface = (*termSurface)(nil)

// toCell maps a board point to a cell coordinate.
func (s *termSurface) toCell(p geom.Point) (int, int) {
	return int(p.X * s.zoom / cellW), int(p.Y * s.zoom / cellH)
}

func (s *termSurface) set(x, y int, r rune, style lipgloss.Style) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return
	}
	s.cells[y*s.w+x] = cell{r: r, style: style}
}

// DrawNode implements render.Surface.
func (s *termSurface) DrawNode(n *board.Node) {
	bounds := n.Bounds()
	x0, y0 := s.toCell(geom.Point{X: bounds.X, Y: bounds.Y})
	x1, y1 := s.toCell(geom.Point{X: bounds.X + bounds.W, Y: bounds.Y + bounds.H})
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	for x := x0; x <= x1; x++ {
		s.set(x, y0, '─', styleNode)
		s.set(x, y1, '─', styleNode)
	}
	for y := y0; y <= y1; y++ {
		s.set(x0, y, '│', styleNode)
		s.set(x1, y, '│', styleNode)
	}
	s.set(x0, y0, '╭', styleNode)
	s.set(x1, y0, '╮', styleNode)
	s.set(x0, y1, '╰', styleNode)
	s.set(x1, y1, '╯', styleNode)

	glyph := kindGlyph(n.Kind)
	label := n.Label
	if label == "" {
		label = n.Kind
	}
	text := glyph + " " + label
	maxLen := x1 - x0 - 1
	if maxLen > 0 && len([]rune(text)) > maxLen {
		text = string([]rune(text)[:maxLen])
	}
	cy := (y0 + y1) / 2
	cx := (x0+x1)/2 - len([]rune(text))/2
	for i, r := range text {
		style := styleNode
		if i == 0 {
			style = styleNodeKind
		}
		s.set(cx+i, cy, r, style)
	}
}

func kindGlyph(kind string) string {
	switch kind {
	case board.KindDecision:
		return "◆"
	case board.KindStart:
		return "●"
	default:
		return "▢"
	}
}

// DrawPath implements render.Surface.
func (s *termSurface) DrawPath(c *board.Connector, p route.Path) {
	s.drawPolyline(p.Flatten(24), '·', styleEdge)
	ex, ey := s.toCell(p.End())
	s.set(ex, ey, '◂', styleEdge)
	if c.Label != "" {
		lx, ly := s.toCell(p.Label)
		for i, r := range c.Label {
			s.set(lx+i-len(c.Label)/2, ly, r, styleEdge)
		}
	}
}

// DrawSection implements render.Surface.
func (s *termSurface) DrawSection(sec *board.Section) {
	_, y0 := s.toCell(geom.Point{Y: sec.Y})
	_, y1 := s.toCell(geom.Point{Y: sec.Y + sec.Height})
	for x := 0; x < s.w; x += 2 {
		s.set(x, y0, '╌', styleSection)
		s.set(x, y1, '╌', styleSection)
	}
}

// DrawPreview implements render.Surface.
func (s *termSurface) DrawPreview(p route.Path, snapped bool) {
	s.drawPolyline(p.Flatten(24), '░', stylePreview)
	if snapped {
		ex, ey := s.toCell(p.End())
		s.set(ex, ey, '◎', stylePreview)
	}
}

// drawPolyline rasterizes connected segments by stepping each one in small
// increments. Cell resolution is coarse enough that uniform stepping beats
// a line algorithm for clarity.
func (s *termSurface) drawPolyline(pts []geom.Point, r rune, style lipgloss.Style) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		steps := int(a.Dist(b)/cellW) + 1
		for j := 0; j <= steps; j++ {
			t := float64(j) / float64(steps)
			x, y := s.toCell(geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
			if x < 0 || x >= s.w || y < 0 || y >= s.h {
				continue
			}
			if s.cells[y*s.w+x].r == ' ' {
				s.set(x, y, r, style)
			}
		}
	}
}

// String renders the grid with per-cell styles applied.
func (s *termSurface) String() string {
	var b strings.Builder
	for y := 0; y < s.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < s.w; x++ {
			c := s.cells[y*s.w+x]
			if c.r == ' ' {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
	}
	return b.String()
}
