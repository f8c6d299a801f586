package grid

// HeaderRow is the row index of the header row; data rows start at 1.
const HeaderRow = 0

// Cell addresses a grid cell. Row 0 is the header row, data rows are 1..N.
type Cell struct {
	Column int
	Row    int
}

// DataRow returns the 0-based data row index of the cell, or -1 for the header.
func (c Cell) DataRow() int {
	return c.Row - 1
}

// FocusState is the state of a FocusManager.
type FocusState int

const (
	// FocusIdle means no element inside the grid has host focus.
	FocusIdle FocusState = iota
	// FocusCell means the focused cell (or its control) has host focus.
	FocusCell
	// FocusFallback means the focused cell's row is not materialized and the grid
	// root is the tab stop until focus re-enters.
	FocusFallback
)

// String returns the state name.
func (s FocusState) String() string {
	switch s {
	case FocusIdle:
		return "idle"
	case FocusCell:
		return "cell-focused"
	case FocusFallback:
		return "container-focused-fallback"
	default:
		return "unknown"
	}
}

// Direction is a keyboard navigation move.
type Direction int

const (
	// MoveUp moves one row up.
	MoveUp Direction = iota
	// MoveDown moves one row down.
	MoveDown
	// MoveLeft moves one column left.
	MoveLeft
	// MoveRight moves one column right.
	MoveRight
	// MoveRowStart moves to the first column of the row.
	MoveRowStart
	// MoveRowEnd moves to the last column of the row.
	MoveRowEnd
	// MovePageUp moves up by one page of rows.
	MovePageUp
	// MovePageDown moves down by one page of rows.
	MovePageDown
	// MoveGridStart moves to the first cell of the header row.
	MoveGridStart
	// MoveGridEnd moves to the last cell of the last data row.
	MoveGridEnd
)

// Element is a mounted, focusable cell as seen by the host toolkit.
type Element interface {
	// Focus moves host focus to the element.
	Focus()

	// Control returns the interactive child of a cell (a link or button), or nil.
	Control() Element
}

// Locator maps cell coordinates to mounted elements.
type Locator interface {
	Lookup(cell Cell) (Element, bool)
}

// FocusRequest is the result of a navigation or focus-in that must complete
// after the next render commit.
type FocusRequest struct {
	// Target is the cell that will receive focus on Commit.
	Target Cell

	// ScrollToDataRow is the data row to bring into view before committing,
	// or -1 when the target is the header row.
	ScrollToDataRow int
}

// FocusManager implements the roving-tabindex model of an ARIA grid across
// virtualization mount and unmount cycles.
//
// At any time at most one tab stop exists: either the remembered focused cell
// (TabIndex 0) or, in FocusFallback, the grid root (RootTabIndex 0).
type FocusManager struct {
	columns  int
	dataRows int
	pageRows int

	focused Cell
	state   FocusState
	pending *Cell

	window    Window
	hasWindow bool
}

// NewFocusManager creates a focus manager for a grid of the given size.
// The initial tab stop is the first header cell.
func NewFocusManager(columns, dataRows int) *FocusManager {
	f := &FocusManager{pageRows: 1}
	f.Resize(columns, dataRows)
	return f
}

// State returns the current state.
func (f *FocusManager) State() FocusState { return f.state }

// Focused returns the remembered focused cell.
func (f *FocusManager) Focused() Cell { return f.focused }

// HasFocus reports whether a cell inside the grid owns host focus.
func (f *FocusManager) HasFocus() bool { return f.state == FocusCell }

// Pending returns the cell waiting for the next commit, if any.
func (f *FocusManager) Pending() (Cell, bool) {
	if f.pending == nil {
		return Cell{}, false
	}
	return *f.pending, true
}

// SetPageSize sets the number of rows moved by MovePageUp and MovePageDown.
func (f *FocusManager) SetPageSize(rows int) {
	if rows < 1 {
		rows = 1
	}
	f.pageRows = rows
}

// TabIndex returns 0 for the single tabbable cell and -1 for every other cell.
func (f *FocusManager) TabIndex(cell Cell) int {
	if f.state != FocusFallback && cell == f.focused {
		return 0
	}
	return -1
}

// RootTabIndex returns 0 while the grid root is the fallback tab stop, else -1.
func (f *FocusManager) RootTabIndex() int {
	if f.state == FocusFallback {
		return 0
	}
	return -1
}

// FocusIn records host focus entering cell.
func (f *FocusManager) FocusIn(cell Cell) {
	f.focused = f.clamp(cell)
	f.state = FocusCell
}

// FocusInRoot handles host focus landing on the grid root, which happens when
// tabbing into a grid in FocusFallback. The returned request moves focus back
// into the remembered cell, scrolling its row into view first.
func (f *FocusManager) FocusInRoot() FocusRequest {
	return f.request(f.focused)
}

// Blur records host focus leaving the grid. A request still waiting for its
// commit is dropped.
func (f *FocusManager) Blur() {
	f.pending = nil
	if f.state == FocusCell {
		f.state = FocusIdle
	}
}

// Navigate computes the cell adjacent to the focused cell in direction d,
// clamped to the grid bounds without wraparound. While a request is waiting for
// its commit the move starts from the requested cell, so keys typed ahead of a
// render build on each other. It returns false when the grid has no focused or
// requested cell, or when the move would not change it.
func (f *FocusManager) Navigate(d Direction) (FocusRequest, bool) {
	if f.columns == 0 || (f.state != FocusCell && f.pending == nil) {
		return FocusRequest{}, false
	}

	base := f.focused
	if f.pending != nil {
		base = *f.pending
	}
	target := base
	switch d {
	case MoveUp:
		target.Row--
	case MoveDown:
		target.Row++
	case MoveLeft:
		target.Column--
	case MoveRight:
		target.Column++
	case MoveRowStart:
		target.Column = 0
	case MoveRowEnd:
		target.Column = f.columns - 1
	case MovePageUp:
		target.Row -= f.pageRows
	case MovePageDown:
		target.Row += f.pageRows
	case MoveGridStart:
		target = Cell{Column: 0, Row: HeaderRow}
	case MoveGridEnd:
		target = Cell{Column: f.columns - 1, Row: f.dataRows}
	}

	target = f.clamp(target)
	if target == base {
		return FocusRequest{}, false
	}
	return f.request(target), true
}

// SetWindow reacts to a recomputed materialized window. When the focused cell's
// row is no longer mounted the grid root becomes the tab stop; when it is mounted
// again the cell gets it back. A focused grid with a request in flight keeps
// its state until the commit settles where focus lands.
func (f *FocusManager) SetWindow(w Window) {
	f.window = w
	f.hasWindow = true
	f.reconcile()
}

func (f *FocusManager) reconcile() {
	if f.pending != nil && f.state == FocusCell {
		return
	}
	if f.focused.Row == HeaderRow {
		if f.state == FocusFallback {
			f.state = FocusIdle
		}
		return
	}

	mounted := f.window.Contains(f.focused.DataRow())
	switch {
	case !mounted && f.state != FocusFallback:
		f.state = FocusFallback
	case mounted && f.state == FocusFallback:
		f.state = FocusIdle
	}
}

// Resize updates the grid dimensions and clamps the focused and pending cells.
// When no data rows remain the focused cell moves to the header row.
func (f *FocusManager) Resize(columns, dataRows int) {
	if columns < 0 {
		columns = 0
	}
	if dataRows < 0 {
		dataRows = 0
	}
	f.columns = columns
	f.dataRows = dataRows

	f.focused = f.clamp(f.focused)
	if f.pending != nil {
		p := f.clamp(*f.pending)
		f.pending = &p
	}
	if f.focused.Row == HeaderRow && f.state == FocusFallback {
		f.state = FocusIdle
	}
}

// Commit is the post-render synchronization point. It looks up the pending
// cell, focuses its control child if it has one (else the cell itself), and
// records the focus-in. It returns false when nothing was pending or the cell
// is still not mounted; focusing an element that does not exist is a no-op.
func (f *FocusManager) Commit(loc Locator) bool {
	if f.pending == nil {
		return false
	}
	cell := *f.pending
	f.pending = nil

	el, ok := loc.Lookup(cell)
	if !ok || el == nil {
		if f.hasWindow {
			f.reconcile()
		}
		return false
	}

	target := el
	if control := el.Control(); control != nil {
		target = control
	}
	target.Focus()
	f.FocusIn(cell)
	return true
}

// PreventSpaceScroll reports whether a Space key press should have its default
// scroll action suppressed. It applies whenever a cell or its control owns focus.
func (f *FocusManager) PreventSpaceScroll() bool {
	return f.state == FocusCell
}

func (f *FocusManager) request(target Cell) FocusRequest {
	t := target
	f.pending = &t

	scrollRow := -1
	if target.Row != HeaderRow {
		scrollRow = target.DataRow()
	}
	return FocusRequest{Target: target, ScrollToDataRow: scrollRow}
}

func (f *FocusManager) clamp(c Cell) Cell {
	if c.Column > f.columns-1 {
		c.Column = f.columns - 1
	}
	if c.Column < 0 {
		c.Column = 0
	}
	if c.Row > f.dataRows {
		c.Row = f.dataRows
	}
	if c.Row < HeaderRow {
		c.Row = HeaderRow
	}
	return c
}
