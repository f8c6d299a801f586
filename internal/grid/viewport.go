package grid

// ScrollEvent reports a change of a viewport's scroll offset.
type ScrollEvent struct {
	// ScrollOffset is the new offset.
	ScrollOffset int

	// ScrollUpdateWasRequested is true when the change came from ScrollTo or
	// ScrollToDataRow rather than from user interaction.
	ScrollUpdateWasRequested bool
}

// Viewport is the scroll container of a windowed row list.
// It owns the scroll offset, clamps it to the scrollable range, and recomputes
// the materialized Window whenever the offset, row count or height changes.
type Viewport struct {
	itemCount int
	rowHeight int
	height    int
	overscan  int
	offset    int
	window    Window

	// OnScroll is called after the offset changes.
	OnScroll func(ScrollEvent)

	// OnVisibleRowsChange is called after the materialized window changes.
	OnVisibleRowsChange func(Window)
}

// NewViewport creates an empty viewport. rowHeight must be positive.
func NewViewport(rowHeight, height, overscan int) *Viewport {
	if rowHeight < 1 {
		rowHeight = 1
	}
	if height < 0 {
		height = 0
	}
	return &Viewport{
		rowHeight: rowHeight,
		height:    height,
		overscan:  overscan,
		window:    EmptyWindow,
	}
}

// RowHeight returns the fixed height of a data row.
func (v *Viewport) RowHeight() int { return v.rowHeight }

// Height returns the container height.
func (v *Viewport) Height() int { return v.height }

// ItemCount returns the number of data rows.
func (v *Viewport) ItemCount() int { return v.itemCount }

// Offset returns the current scroll offset.
func (v *Viewport) Offset() int { return v.offset }

// Window returns the materialized row range.
func (v *Viewport) Window() Window { return v.window }

// TotalHeight is the scrollable content height, itemCount × rowHeight.
func (v *Viewport) TotalHeight() int {
	return v.itemCount * v.rowHeight
}

// MaxOffset is the largest offset the container allows.
func (v *Viewport) MaxOffset() int {
	maxOffset := v.TotalHeight() - v.height
	if maxOffset < 0 {
		return 0
	}
	return maxOffset
}

// VisibleRange returns the rows intersecting the viewport, without overscan.
//
//nolint:nonamedreturns // Named returns document the two indexes.
func (v *Viewport) VisibleRange() (start, stop int) {
	return VisibleRange(v.params())
}

// RowTop returns the offset of the top edge of data row i.
func (v *Viewport) RowTop(i int) int {
	return i * v.rowHeight
}

// SetItemCount updates the row count. A shrinking list can pull the offset back
// into range; that adjustment is reported like a native scroll.
func (v *Viewport) SetItemCount(n int) {
	if n < 0 {
		n = 0
	}
	v.itemCount = n
	v.setOffset(v.offset, false)
	v.recompute()
}

// SetHeight updates the container height.
func (v *Viewport) SetHeight(h int) {
	if h < 0 {
		h = 0
	}
	v.height = h
	v.setOffset(v.offset, false)
	v.recompute()
}

// ScrollTo moves to offset on behalf of a program request.
func (v *Viewport) ScrollTo(offset int) {
	v.setOffset(offset, true)
}

// UserScroll moves to offset on behalf of user interaction.
func (v *Viewport) UserScroll(offset int) {
	v.setOffset(offset, false)
}

// ScrollBy moves by delta on behalf of user interaction.
func (v *Viewport) ScrollBy(delta int) {
	v.setOffset(v.offset+delta, false)
}

// ScrollToDataRow scrolls the minimum distance needed to show data row i in full.
// i is clamped to [0, ItemCount).
func (v *Viewport) ScrollToDataRow(i int) {
	if v.itemCount == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > v.itemCount-1 {
		i = v.itemCount - 1
	}

	top := v.RowTop(i)
	bottom := top + v.rowHeight
	switch {
	case top < v.offset:
		v.ScrollTo(top)
	case bottom > v.offset+v.height:
		v.ScrollTo(bottom - v.height)
	}
}

// IsRowMounted reports whether data row i is inside the materialized window.
func (v *Viewport) IsRowMounted(i int) bool {
	return v.window.Contains(i)
}

func (v *Viewport) setOffset(offset int, requested bool) {
	if offset < 0 {
		offset = 0
	}
	if maxOffset := v.MaxOffset(); offset > maxOffset {
		offset = maxOffset
	}
	if offset == v.offset {
		return
	}

	v.offset = offset
	v.recompute()
	if v.OnScroll != nil {
		v.OnScroll(ScrollEvent{ScrollOffset: offset, ScrollUpdateWasRequested: requested})
	}
}

func (v *Viewport) recompute() {
	w := ComputeWindow(v.params())
	if w == v.window {
		return
	}
	v.window = w
	if v.OnVisibleRowsChange != nil {
		v.OnVisibleRowsChange(w)
	}
}

func (v *Viewport) params() WindowParams {
	return WindowParams{
		ItemCount:       v.itemCount,
		RowHeight:       v.rowHeight,
		ContainerHeight: v.height,
		ScrollOffset:    v.offset,
		Overscan:        v.overscan,
	}
}
