// Package scrollsync keeps two virtualized views of the same ordered rows
// scrolled to the same logical position when their row heights differ.
package scrollsync

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/rshade/varbrowse/internal/grid"
)

// View is one side of a link.
type View interface {
	// ScrollTo moves the view to offset. The resulting scroll event must carry
	// ScrollUpdateWasRequested = true.
	ScrollTo(offset int)

	// RowHeight is the fixed height of one row in the view.
	RowHeight() int
}

// TranslateOffset converts an offset between views with different row heights:
// round(offset × to / from).
func TranslateOffset(offset, fromRowHeight, toRowHeight int) int {
	if fromRowHeight <= 0 {
		return offset
	}
	return int(math.Round(float64(offset) * float64(toRowHeight) / float64(fromRowHeight)))
}

// Synchronizer mediates scroll offsets between two views. Each view owns its
// own offset; only user-driven scroll events are propagated, so the scroll
// event produced by the receiving view's ScrollTo never bounces back.
type Synchronizer struct {
	a, b   View
	logger zerolog.Logger
}

// Link creates a synchronizer between a and b. Register OnScrollA and
// OnScrollB as the views' scroll callbacks.
func Link(a, b View) *Synchronizer {
	return &Synchronizer{a: a, b: b, logger: zerolog.Nop()}
}

// WithLogger sets a logger for trace-level sync events.
func (s *Synchronizer) WithLogger(logger zerolog.Logger) *Synchronizer {
	s.logger = logger
	return s
}

// OnScrollA handles a scroll event from view A.
func (s *Synchronizer) OnScrollA(ev grid.ScrollEvent) {
	s.propagate(ev, s.a, s.b, "a")
}

// OnScrollB handles a scroll event from view B.
func (s *Synchronizer) OnScrollB(ev grid.ScrollEvent) {
	s.propagate(ev, s.b, s.a, "b")
}

func (s *Synchronizer) propagate(ev grid.ScrollEvent, from, to View, source string) {
	if ev.ScrollUpdateWasRequested {
		return
	}
	offset := TranslateOffset(ev.ScrollOffset, from.RowHeight(), to.RowHeight())
	s.logger.Trace().
		Str("source", source).
		Int("offset", ev.ScrollOffset).
		Int("translated", offset).
		Msg("linked scroll")
	to.ScrollTo(offset)
}
