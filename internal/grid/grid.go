package grid

import (
	"errors"
)

// NoRow is passed to OnHoverRow when no row is hovered.
const NoRow = -1

// ErrNilRowKey is returned when Options.RowKey is missing.
var ErrNilRowKey = errors.New("row key function is required")

// Options configures a Grid.
type Options[T any] struct {
	// Columns are rendered exactly as given, in order.
	Columns []Column[T]

	// RowKey returns a stable, unique key for a row.
	RowKey func(T) string

	// RowHeight is the fixed height of every data row.
	RowHeight int

	// Overscan is the number of rows materialized beyond each edge of the viewport.
	// Zero selects DefaultOverscan; a negative value disables overscan.
	Overscan int

	// InitialSort is the starting sort state.
	InitialSort SortState

	// CellContext is passed to every Render call.
	CellContext any
}

// Grid is the headless core of a virtualized data grid. It composes the column
// width allocator, a viewport, a focus manager and a sort controller around a
// caller-owned row slice. All callbacks run synchronously on the caller's goroutine.
type Grid[T any] struct {
	columns     []Column[T]
	rows        []T
	rowKey      func(T) string
	cellContext any

	availableWidth float64
	widths         []float64
	totalWidth     float64

	viewport *Viewport
	focus    *FocusManager
	sort     *SortController
	hoverRow int

	// OnHoverRow is called with the hovered data row, or NoRow.
	OnHoverRow func(row int)

	// OnRequestSort is called after a sortable header requests a sort.
	OnRequestSort func(columnKey string)

	// OnVisibleRowsChange is called when the materialized window changes.
	OnVisibleRowsChange func(Window)

	// OnScroll is called when the scroll offset changes.
	OnScroll func(ScrollEvent)

	// OnActivate is called when an interactive data cell is activated.
	OnActivate func(cell Cell)
}

// New creates a Grid with no rows.
func New[T any](opts Options[T]) (*Grid[T], error) {
	if opts.RowKey == nil {
		return nil, ErrNilRowKey
	}
	if err := ValidateColumns(opts.Columns); err != nil {
		return nil, err
	}

	overscan := opts.Overscan
	switch {
	case overscan == 0:
		overscan = DefaultOverscan
	case overscan < 0:
		overscan = 0
	}

	g := &Grid[T]{
		columns:     opts.Columns,
		rowKey:      opts.RowKey,
		cellContext: opts.CellContext,
		viewport:    NewViewport(opts.RowHeight, 0, overscan),
		focus:       NewFocusManager(len(opts.Columns), 0),
		sort:        NewSortController(opts.InitialSort),
		hoverRow:    NoRow,
	}
	g.viewport.OnScroll = g.handleScroll
	g.viewport.OnVisibleRowsChange = g.handleWindow
	g.widths, g.totalWidth = AllocateWidths(g.columns, 0)
	return g, nil
}

// Columns returns the column set.
func (g *Grid[T]) Columns() []Column[T] { return g.columns }

// Rows returns the current rows.
func (g *Grid[T]) Rows() []T { return g.rows }

// RowCount returns the number of data rows.
func (g *Grid[T]) RowCount() int { return len(g.rows) }

// Viewport returns the scroll container.
func (g *Grid[T]) Viewport() *Viewport { return g.viewport }

// Focus returns the focus manager.
func (g *Grid[T]) Focus() *FocusManager { return g.focus }

// Sort returns the sort controller.
func (g *Grid[T]) Sort() *SortController { return g.sort }

// RowHeight returns the fixed data row height.
func (g *Grid[T]) RowHeight() int { return g.viewport.RowHeight() }

// Widths returns the allocated column widths.
func (g *Grid[T]) Widths() []float64 { return g.widths }

// TotalWidth returns the grid width, at least the sum of minimum widths.
func (g *Grid[T]) TotalWidth() float64 { return g.totalWidth }

// HoverRow returns the hovered data row or NoRow.
func (g *Grid[T]) HoverRow() int { return g.hoverRow }

// SetCellContext replaces the value passed to Render.
func (g *Grid[T]) SetCellContext(ctx any) { g.cellContext = ctx }

// SetRows replaces the rows. The focused cell is clamped to the new row count
// and the materialized window is recomputed.
func (g *Grid[T]) SetRows(rows []T) {
	g.rows = rows
	g.focus.Resize(len(g.columns), len(rows))
	g.viewport.SetItemCount(len(rows))
	g.focus.SetWindow(g.viewport.Window())
	if g.hoverRow >= len(rows) {
		g.Hover(NoRow)
	}
}

// SetColumns replaces the column set and reallocates widths.
func (g *Grid[T]) SetColumns(cols []Column[T]) error {
	if err := ValidateColumns(cols); err != nil {
		return err
	}
	g.columns = cols
	g.widths, g.totalWidth = AllocateWidths(g.columns, g.availableWidth)
	g.focus.Resize(len(cols), len(g.rows))
	return nil
}

// SetSize updates the available width and the viewport height.
func (g *Grid[T]) SetSize(width float64, height int) {
	if width != g.availableWidth || len(g.widths) != len(g.columns) {
		g.availableWidth = width
		g.widths, g.totalWidth = AllocateWidths(g.columns, width)
	}
	g.viewport.SetHeight(height)
	g.focus.SetPageSize(height / g.viewport.RowHeight())
	g.focus.SetWindow(g.viewport.Window())
}

// Row returns data row i.
func (g *Grid[T]) Row(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(g.rows) {
		return zero, false
	}
	return g.rows[i], true
}

// RowKey returns the key of data row i.
func (g *Grid[T]) RowKey(i int) string {
	row, ok := g.Row(i)
	if !ok {
		return ""
	}
	return g.rowKey(row)
}

// FindRow returns the index of the row with key, or -1.
func (g *Grid[T]) FindRow(key string) int {
	for i, row := range g.rows {
		if g.rowKey(row) == key {
			return i
		}
	}
	return -1
}

// RenderCell renders data row i for column c.
func (g *Grid[T]) RenderCell(i, c int) string {
	row, ok := g.Row(i)
	if !ok || c < 0 || c >= len(g.columns) || g.columns[c].Render == nil {
		return ""
	}
	return g.columns[c].Render(row, g.columns[c].Key, g.cellContext)
}

// IsMounted reports whether cell is materialized. Header cells always are.
func (g *Grid[T]) IsMounted(cell Cell) bool {
	if cell.Column < 0 || cell.Column >= len(g.columns) {
		return false
	}
	if cell.Row == HeaderRow {
		return true
	}
	return g.viewport.IsRowMounted(cell.DataRow())
}

// ScrollTo scrolls to offset on behalf of a program request.
func (g *Grid[T]) ScrollTo(offset int) {
	g.viewport.ScrollTo(offset)
}

// ScrollToDataRow scrolls data row i into view; i is clamped to the row range.
func (g *Grid[T]) ScrollToDataRow(i int) {
	g.viewport.ScrollToDataRow(i)
}

// JumpToKey scrolls the row with key into view.
func (g *Grid[T]) JumpToKey(key string) bool {
	i := g.FindRow(key)
	if i < 0 {
		return false
	}
	g.ScrollToDataRow(i)
	return true
}

// Hover records the hovered data row and reports changes.
func (g *Grid[T]) Hover(row int) {
	if row < 0 || row >= len(g.rows) {
		row = NoRow
	}
	if row == g.hoverRow {
		return
	}
	g.hoverRow = row
	if g.OnHoverRow != nil {
		g.OnHoverRow(row)
	}
}

// RequestSort handles a header interaction on column c. Non-sortable columns
// are ignored.
func (g *Grid[T]) RequestSort(c int) bool {
	if c < 0 || c >= len(g.columns) || !g.columns[c].IsSortable {
		return false
	}
	key := g.columns[c].Key
	g.sort.Request(key)
	if g.OnRequestSort != nil {
		g.OnRequestSort(key)
	}
	return true
}

// Navigate moves focus in direction d. The target row is scrolled into view
// immediately; focus itself moves on the next Commit.
func (g *Grid[T]) Navigate(d Direction) (FocusRequest, bool) {
	req, ok := g.focus.Navigate(d)
	if !ok {
		return req, false
	}
	g.scrollForRequest(req)
	return req, true
}

// FocusInRoot restores focus to the remembered cell after the grid root was focused.
func (g *Grid[T]) FocusInRoot() FocusRequest {
	req := g.focus.FocusInRoot()
	g.scrollForRequest(req)
	return req
}

// Commit completes a pending focus move after the host has rendered.
func (g *Grid[T]) Commit(loc Locator) bool {
	return g.focus.Commit(loc)
}

// Activate acts on the focused cell: a sortable header requests a sort, an
// interactive data cell reports OnActivate.
func (g *Grid[T]) Activate() bool {
	if !g.focus.HasFocus() {
		return false
	}
	cell := g.focus.Focused()
	if cell.Row == HeaderRow {
		return g.RequestSort(cell.Column)
	}
	if cell.Column >= len(g.columns) || !g.columns[cell.Column].Interactive {
		return false
	}
	if g.OnActivate != nil {
		g.OnActivate(cell)
	}
	return true
}

func (g *Grid[T]) scrollForRequest(req FocusRequest) {
	if req.ScrollToDataRow >= 0 {
		g.viewport.ScrollToDataRow(req.ScrollToDataRow)
	}
}

func (g *Grid[T]) handleScroll(ev ScrollEvent) {
	if g.OnScroll != nil {
		g.OnScroll(ev)
	}
}

func (g *Grid[T]) handleWindow(w Window) {
	g.focus.SetWindow(w)
	if g.OnVisibleRowsChange != nil {
		g.OnVisibleRowsChange(w)
	}
}
