package scrollsync_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/varbrowse/internal/grid"
	"github.com/rshade/varbrowse/internal/grid/scrollsync"
)

// countingView wraps a viewport and records ScrollTo calls.
type countingView struct {
	*grid.Viewport
	calls []int
}

func (v *countingView) ScrollTo(offset int) {
	v.calls = append(v.calls, offset)
	v.Viewport.ScrollTo(offset)
}

func newLinkedViews(t *testing.T) (*countingView, *countingView, *scrollsync.Synchronizer) {
	t.Helper()
	a := &countingView{Viewport: grid.NewViewport(25, 500, grid.DefaultOverscan)}
	b := &countingView{Viewport: grid.NewViewport(14, 500, grid.DefaultOverscan)}
	a.SetItemCount(1000)
	b.SetItemCount(1000)

	s := scrollsync.Link(a, b)
	a.OnScroll = s.OnScrollA
	b.OnScroll = s.OnScrollB
	require.Equal(t, 0, a.Offset())
	require.Equal(t, 0, b.Offset())
	return a, b, s
}

// TestSynchronizer_UserScrollPropagates tests one-way propagation without echo.
func TestSynchronizer_UserScrollPropagates(t *testing.T) {
	a, b, _ := newLinkedViews(t)

	a.UserScroll(250)

	assert.Equal(t, []int{140}, b.calls)
	assert.Equal(t, 140, b.Offset())
	assert.Empty(t, a.calls, "the requested scroll on B must not bounce back")
	assert.Equal(t, 250, a.Offset())
}

// TestSynchronizer_ReverseDirection tests propagation from B to A.
func TestSynchronizer_ReverseDirection(t *testing.T) {
	a, b, _ := newLinkedViews(t)

	b.UserScroll(140)

	assert.Equal(t, []int{250}, a.calls)
	assert.Equal(t, 250, a.Offset())
	assert.Empty(t, b.calls)
}

// TestSynchronizer_RequestedScrollIsNotPropagated tests that program scrolls stay local.
func TestSynchronizer_RequestedScrollIsNotPropagated(t *testing.T) {
	a, b, _ := newLinkedViews(t)

	a.ScrollTo(500)
	a.ScrollToDataRow(300)

	assert.Empty(t, b.calls)
	assert.Equal(t, 0, b.Offset())
}

// TestSynchronizer_Logging tests the trace event.
func TestSynchronizer_Logging(t *testing.T) {
	a, b, s := newLinkedViews(t)
	var buf bytes.Buffer
	s.WithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	a.UserScroll(100)

	assert.Equal(t, []int{56}, b.calls)
	assert.Contains(t, buf.String(), `"translated":56`)
	assert.Contains(t, buf.String(), `"source":"a"`)
}

// TestTranslateOffset tests offset conversion.
func TestTranslateOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		from   int
		to     int
		expect int
	}{
		{name: "table to track", offset: 250, from: 25, to: 14, expect: 140},
		{name: "track to table", offset: 140, from: 14, to: 25, expect: 250},
		{name: "rounds half away from zero", offset: 1, from: 2, to: 1, expect: 1},
		{name: "fractional row", offset: 13, from: 25, to: 14, expect: 7},
		{name: "same height", offset: 77, from: 3, to: 3, expect: 77},
		{name: "zero source height", offset: 9, from: 0, to: 5, expect: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, scrollsync.TranslateOffset(tt.offset, tt.from, tt.to))
		})
	}
}
