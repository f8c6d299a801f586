package grid

import (
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	// headerLines is the height of the header row in terminal lines.
	headerLines = 1

	// wheelStep is the number of lines scrolled per mouse wheel notch.
	wheelStep = 3

	// cellGap is the blank space kept at the end of every cell.
	cellGap = 1

	truncateTail = "…"
)

//nolint:gochecknoglobals // Monotonic id source shared by all grid models.
var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// FocusCommitMsg is delivered after the render that follows a focus request.
// It is the point at which newly materialized rows exist and can take focus.
type FocusCommitMsg struct {
	id int
}

// Model renders a Grid in the terminal. The first line is the header row; each
// data row below it occupies RowHeight lines and only rows inside the
// materialized window are rendered.
type Model[T any] struct {
	id     int
	grid   *Grid[T]
	keys   KeyMap
	styles Styles

	width  int
	height int

	firstColumn    int
	active         bool
	focusOnControl bool
}

// NewModel wraps g in a Bubble Tea model of the given size.
func NewModel[T any](g *Grid[T], width, height int) *Model[T] {
	m := &Model[T]{
		id:     nextID(),
		grid:   g,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
	}
	m.SetSize(width, height)
	return m
}

// Grid returns the wrapped grid.
func (m *Model[T]) Grid() *Grid[T] { return m.grid }

// KeyMap returns the key bindings.
func (m *Model[T]) KeyMap() KeyMap { return m.keys }

// SetKeyMap replaces the key bindings.
func (m *Model[T]) SetKeyMap(k KeyMap) { m.keys = k }

// SetStyles replaces the styles.
func (m *Model[T]) SetStyles(s Styles) { m.styles = s }

// Width returns the model width in cells.
func (m *Model[T]) Width() int { return m.width }

// Height returns the model height in lines, header included.
func (m *Model[T]) Height() int { return m.height }

// Active reports whether the grid currently owns keyboard focus.
func (m *Model[T]) Active() bool { return m.active }

// FocusOnControl reports whether focus sits on the focused cell's control.
func (m *Model[T]) FocusOnControl() bool { return m.focusOnControl }

// FirstColumn returns the leftmost rendered column.
func (m *Model[T]) FirstColumn() int { return m.firstColumn }

// SetSize resizes the model. The body height is the height minus the header.
func (m *Model[T]) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < headerLines {
		height = headerLines
	}
	m.width = width
	m.height = height
	m.grid.SetSize(float64(width), height-headerLines)
	m.clampFirstColumn()
}

// SetRows replaces the grid rows.
func (m *Model[T]) SetRows(rows []T) {
	m.grid.SetRows(rows)
}

// RowHeight returns the data row height in lines.
func (m *Model[T]) RowHeight() int { return m.grid.RowHeight() }

// ScrollTo scrolls the body to offset lines on behalf of a program request.
func (m *Model[T]) ScrollTo(offset int) { m.grid.ScrollTo(offset) }

// ScrollToDataRow scrolls data row i into view.
func (m *Model[T]) ScrollToDataRow(i int) { m.grid.ScrollToDataRow(i) }

// Focus gives the grid keyboard focus, as tabbing into it would. The tab stop
// is the remembered cell, or the grid root while that cell's row is not
// materialized, in which case focus is restored after the next render.
func (m *Model[T]) Focus() tea.Cmd {
	m.active = true
	fm := m.grid.Focus()
	if fm.RootTabIndex() == 0 {
		m.grid.FocusInRoot()
		return m.commitCmd()
	}
	fm.FocusIn(fm.Focused())
	m.focusOnControl = false
	m.ensureColumnVisible(fm.Focused().Column)
	return nil
}

// Blur removes keyboard focus from the grid.
func (m *Model[T]) Blur() {
	m.active = false
	m.focusOnControl = false
	m.grid.Focus().Blur()
}

// Lookup implements Locator over the materialized cells.
func (m *Model[T]) Lookup(cell Cell) (Element, bool) {
	if !m.grid.IsMounted(cell) {
		return nil, false
	}
	return cellElement[T]{model: m, cell: cell}, true
}

type cellElement[T any] struct {
	model *Model[T]
	cell  Cell
}

func (e cellElement[T]) Focus() {
	e.model.focusOnControl = false
	e.model.ensureColumnVisible(e.cell.Column)
}

func (e cellElement[T]) Control() Element {
	cols := e.model.grid.Columns()
	if e.cell.Row == HeaderRow || !cols[e.cell.Column].Interactive {
		return nil
	}
	return controlElement[T]{model: e.model, cell: e.cell}
}

type controlElement[T any] struct {
	model *Model[T]
	cell  Cell
}

func (e controlElement[T]) Focus() {
	e.model.focusOnControl = true
	e.model.ensureColumnVisible(e.cell.Column)
}

func (e controlElement[T]) Control() Element { return nil }

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case FocusCommitMsg:
		if msg.id == m.id {
			m.grid.Commit(m)
		}
		return m, nil
	case tea.FocusMsg:
		return m, m.Focus()
	case tea.BlurMsg:
		m.Blur()
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	// The focused row scrolled away while the grid was active, so host focus
	// is on the root. A key press there re-enters the remembered cell.
	if m.grid.Focus().State() == FocusFallback {
		if key.Matches(msg, m.keys.Space) {
			m.handleSpace()
			return nil
		}
		m.grid.FocusInRoot()
		return m.commitCmd()
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.navigate(MoveUp)
	case key.Matches(msg, m.keys.Down):
		return m.navigate(MoveDown)
	case key.Matches(msg, m.keys.Left):
		return m.navigate(MoveLeft)
	case key.Matches(msg, m.keys.Right):
		return m.navigate(MoveRight)
	case key.Matches(msg, m.keys.RowStart):
		return m.navigate(MoveRowStart)
	case key.Matches(msg, m.keys.RowEnd):
		return m.navigate(MoveRowEnd)
	case key.Matches(msg, m.keys.PageUp):
		return m.navigate(MovePageUp)
	case key.Matches(msg, m.keys.PageDown):
		return m.navigate(MovePageDown)
	case key.Matches(msg, m.keys.GridStart):
		return m.navigate(MoveGridStart)
	case key.Matches(msg, m.keys.GridEnd):
		return m.navigate(MoveGridEnd)
	case key.Matches(msg, m.keys.Activate):
		m.grid.Activate()
		return nil
	case key.Matches(msg, m.keys.Space):
		m.handleSpace()
		return nil
	}
	return nil
}

// handleSpace scrolls one page unless a cell owns focus. A focused header or
// control is activated instead.
func (m *Model[T]) handleSpace() {
	if !m.grid.Focus().PreventSpaceScroll() {
		m.grid.Viewport().ScrollBy(m.grid.Viewport().Height())
		return
	}
	if m.focusOnControl || m.grid.Focus().Focused().Row == HeaderRow {
		m.grid.Activate()
	}
}

func (m *Model[T]) navigate(d Direction) tea.Cmd {
	if _, ok := m.grid.Navigate(d); !ok {
		return nil
	}
	return m.commitCmd()
}

func (m *Model[T]) commitCmd() tea.Cmd {
	id := m.id
	return func() tea.Msg {
		return FocusCommitMsg{id: id}
	}
}

func (m *Model[T]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.grid.Viewport().ScrollBy(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		m.grid.Viewport().ScrollBy(wheelStep)
		return nil
	}

	cell, inside := m.HitTest(msg.X, msg.Y)
	if !inside {
		m.grid.Hover(NoRow)
		return nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		m.grid.Hover(cell.DataRow())
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		m.active = true
		m.grid.Focus().FocusIn(cell)
		if el, ok := m.Lookup(cell); ok {
			el.Focus()
		}
		if cell.Row == HeaderRow {
			m.grid.RequestSort(cell.Column)
		}
	}
	return nil
}

// HitTest maps model-local coordinates to a cell.
func (m *Model[T]) HitTest(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return Cell{}, false
	}

	column := -1
	cells := CellWidths(m.grid.Widths())
	left := 0
	for c := m.firstColumn; c < len(cells); c++ {
		if x < left+cells[c] {
			column = c
			break
		}
		left += cells[c]
	}
	if column < 0 {
		return Cell{}, false
	}

	if y < headerLines {
		return Cell{Column: column, Row: HeaderRow}, true
	}

	vp := m.grid.Viewport()
	dataRow := (vp.Offset() + y - headerLines) / vp.RowHeight()
	if dataRow >= vp.ItemCount() {
		return Cell{}, false
	}
	return Cell{Column: column, Row: dataRow + 1}, true
}

// ensureColumnVisible adjusts horizontal scrolling so column c is on screen.
func (m *Model[T]) ensureColumnVisible(c int) {
	if c < m.firstColumn {
		m.firstColumn = c
		return
	}
	cells := CellWidths(m.grid.Widths())
	for m.firstColumn < c {
		span := 0
		for i := m.firstColumn; i <= c && i < len(cells); i++ {
			span += cells[i]
		}
		if span <= m.width {
			break
		}
		m.firstColumn++
	}
}

func (m *Model[T]) clampFirstColumn() {
	cols := len(m.grid.Columns())
	if m.firstColumn > cols-1 {
		m.firstColumn = cols - 1
	}
	if m.firstColumn < 0 {
		m.firstColumn = 0
	}
	if float64(m.width) >= m.grid.TotalWidth() {
		m.firstColumn = 0
	}
}

// View implements tea.Model.
func (m *Model[T]) View() string {
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader())
	lines = append(lines, m.renderBody()...)
	return strings.Join(lines, "\n")
}

func (m *Model[T]) renderHeader() string {
	cols := m.grid.Columns()
	cells := CellWidths(m.grid.Widths())
	fm := m.grid.Focus()
	sorter := m.grid.Sort()

	var sb strings.Builder
	used := 0
	for c := m.firstColumn; c < len(cols) && used < m.width; c++ {
		heading := cols[c].Heading
		if glyph := sorter.Indicator(cols[c].Key).Glyph(); glyph != "" {
			heading += " " + glyph
		}

		style := m.styles.Header
		if fm.HasFocus() && fm.Focused() == (Cell{Column: c, Row: HeaderRow}) {
			style = style.Inherit(m.styles.Focused)
		}
		w := minInt(cells[c], m.width-used)
		sb.WriteString(renderCell(style, heading, w, cols[c].Align))
		used += w
	}
	return sb.String()
}

func (m *Model[T]) renderBody() []string {
	bodyHeight := m.height - headerLines
	vp := m.grid.Viewport()
	w := vp.Window()

	var materialized []string
	if !w.Empty() {
		materialized = make([]string, 0, w.Len()*vp.RowHeight())
		for i := w.StartIndex; i <= w.StopIndex; i++ {
			materialized = append(materialized, m.renderRow(i)...)
		}
	}

	skip := vp.Offset() - vp.RowTop(w.StartIndex)
	if w.Empty() || skip < 0 {
		skip = 0
	}

	body := make([]string, 0, bodyHeight)
	for i := skip; i < len(materialized) && len(body) < bodyHeight; i++ {
		body = append(body, materialized[i])
	}
	if len(body) == 0 && vp.ItemCount() == 0 && bodyHeight > 0 {
		body = append(body, m.styles.Fallback.Render("No rows"))
	}
	for len(body) < bodyHeight {
		body = append(body, "")
	}
	return body
}

// renderRow returns the RowHeight lines of data row i.
func (m *Model[T]) renderRow(i int) []string {
	cols := m.grid.Columns()
	cells := CellWidths(m.grid.Widths())
	fm := m.grid.Focus()
	hovered := m.grid.HoverRow() == i

	var sb strings.Builder
	used := 0
	for c := m.firstColumn; c < len(cols) && used < m.width; c++ {
		style := m.styles.Cell
		if hovered {
			style = style.Inherit(m.styles.Hover)
		}
		if fm.HasFocus() && fm.Focused() == (Cell{Column: c, Row: i + 1}) {
			if m.focusOnControl {
				style = m.styles.FocusedControl.Inherit(style)
			} else {
				style = m.styles.Focused.Inherit(style)
			}
		}
		w := minInt(cells[c], m.width-used)
		sb.WriteString(renderCell(style, m.grid.RenderCell(i, c), w, cols[c].Align))
		used += w
	}

	lines := []string{sb.String()}
	for extra := 1; extra < m.grid.RowHeight(); extra++ {
		if extra == m.grid.RowHeight()-1 {
			lines = append(lines, m.styles.Separator.Render(strings.Repeat("─", minInt(used, m.width))))
			continue
		}
		lines = append(lines, "")
	}
	return lines
}

// renderCell truncates content to the cell width, keeping a trailing gap.
func renderCell(style lipgloss.Style, content string, width int, align Alignment) string {
	if width <= 0 {
		return ""
	}
	if nl := strings.IndexByte(content, '\n'); nl >= 0 {
		content = content[:nl]
	}

	inner := width - cellGap
	if inner < 0 {
		inner = 0
	}
	content = ansi.Truncate(content, inner, truncateTail)

	pos := lipgloss.Left
	if align == AlignRight {
		pos = lipgloss.Right
	}
	return style.
		Width(width).
		MaxWidth(width).
		PaddingRight(cellGap).
		Align(pos).
		Render(content)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
