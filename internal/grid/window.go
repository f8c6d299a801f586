package grid

// DefaultOverscan is the number of extra rows materialized above and below the
// visible range for smooth scrolling.
const DefaultOverscan = 10

// Window is the range of data rows that are materialized, inclusive on both ends.
// Indexes are 0-based over data rows; the header row is not counted.
type Window struct {
	StartIndex int
	StopIndex  int
}

// EmptyWindow is reported when there are no rows to render.
//
//nolint:gochecknoglobals // Immutable sentinel value.
var EmptyWindow = Window{StartIndex: 0, StopIndex: -1}

// Empty reports whether the window covers no rows.
func (w Window) Empty() bool {
	return w.StopIndex < w.StartIndex
}

// Contains reports whether data row index i is inside the window.
func (w Window) Contains(i int) bool {
	return !w.Empty() && i >= w.StartIndex && i <= w.StopIndex
}

// Len returns the number of rows in the window.
func (w Window) Len() int {
	if w.Empty() {
		return 0
	}
	return w.StopIndex - w.StartIndex + 1
}

// WindowParams are the inputs to ComputeWindow.
type WindowParams struct {
	// ItemCount is the total number of data rows.
	ItemCount int

	// RowHeight is the fixed height of every data row.
	RowHeight int

	// ContainerHeight is the height of the scrolling viewport.
	ContainerHeight int

	// ScrollOffset is the current scroll position.
	ScrollOffset int

	// Overscan is the number of rows added on each side of the visible range.
	Overscan int
}

// VisibleRange returns the rows that intersect the viewport, without overscan.
// The stop index is the last row whose top edge lies above the viewport bottom,
// so partially visible rows at either edge are included.
//
//nolint:nonamedreturns // Named returns document the two indexes.
func VisibleRange(p WindowParams) (start, stop int) {
	if p.ItemCount <= 0 || p.RowHeight <= 0 {
		return 0, -1
	}

	offset := p.ScrollOffset
	if offset < 0 {
		offset = 0
	}

	start = offset / p.RowHeight
	if start > p.ItemCount-1 {
		start = p.ItemCount - 1
	}

	startTop := start * p.RowHeight
	visible := ceilDiv(p.ContainerHeight+offset-startTop, p.RowHeight)
	if visible < 1 {
		visible = 1
	}

	stop = start + visible - 1
	if stop > p.ItemCount-1 {
		stop = p.ItemCount - 1
	}
	return start, stop
}

// ComputeWindow returns the materialized row range for the given scroll state:
// the visible range widened by Overscan on each side and clamped to [0, ItemCount).
func ComputeWindow(p WindowParams) Window {
	start, stop := VisibleRange(p)
	if stop < start {
		return EmptyWindow
	}

	overscan := p.Overscan
	if overscan < 0 {
		overscan = 0
	}

	start -= overscan
	if start < 0 {
		start = 0
	}

	stop += overscan
	if stop > p.ItemCount-1 {
		stop = p.ItemCount - 1
	}

	return Window{StartIndex: start, StopIndex: stop}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
