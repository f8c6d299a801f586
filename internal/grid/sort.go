package grid

import (
	"errors"
	"fmt"
	"strings"
)

// sortExpressionParts is the maximum number of ":"-separated parts in a sort expression.
const sortExpressionParts = 2

// SortOrder is the direction of a sort.
type SortOrder int

const (
	// SortDescending orders largest values first. It is the default for a newly
	// selected key because the largest values are usually the interesting ones.
	SortDescending SortOrder = iota
	// SortAscending orders smallest values first.
	SortAscending
)

// String returns "ascending" or "descending".
func (o SortOrder) String() string {
	if o == SortAscending {
		return "ascending"
	}
	return "descending"
}

// Flip returns the opposite order.
func (o SortOrder) Flip() SortOrder {
	if o == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// SortIndicator is the per-column sort state shown in a header cell.
type SortIndicator int

const (
	// SortNone means the column is not the sort key.
	SortNone SortIndicator = iota
	// SortIndicatorAscending means the column is the key, ascending.
	SortIndicatorAscending
	// SortIndicatorDescending means the column is the key, descending.
	SortIndicatorDescending
)

// AriaSort returns the aria-sort attribute value for the indicator.
func (s SortIndicator) AriaSort() string {
	switch s {
	case SortIndicatorAscending:
		return "ascending"
	case SortIndicatorDescending:
		return "descending"
	case SortNone:
		return "none"
	default:
		return "none"
	}
}

// Glyph returns the arrow drawn next to a header.
func (s SortIndicator) Glyph() string {
	switch s {
	case SortIndicatorAscending:
		return "▲"
	case SortIndicatorDescending:
		return "▼"
	case SortNone:
		return ""
	default:
		return ""
	}
}

// SortState is a sort key and order. An empty Key means unsorted.
type SortState struct {
	Key   string
	Order SortOrder
}

// SortController holds the sort state toggled by header interaction.
// It never sorts rows; the caller applies its own comparator.
type SortController struct {
	state SortState
}

// NewSortController creates a controller with an initial state.
func NewSortController(initial SortState) *SortController {
	return &SortController{state: initial}
}

// State returns the current sort key and order.
func (s *SortController) State() SortState {
	return s.state
}

// Request handles a sort request for key: the current key flips its order,
// any other key becomes the sort key in descending order.
func (s *SortController) Request(key string) SortState {
	if key == s.state.Key {
		s.state.Order = s.state.Order.Flip()
	} else {
		s.state = SortState{Key: key, Order: SortDescending}
	}
	return s.state
}

// Indicator returns the header indicator for columnKey.
func (s *SortController) Indicator(columnKey string) SortIndicator {
	if s.state.Key == "" || columnKey != s.state.Key {
		return SortNone
	}
	if s.state.Order == SortAscending {
		return SortIndicatorAscending
	}
	return SortIndicatorDescending
}

// ErrEmptySortExpression is returned for a blank sort expression.
var ErrEmptySortExpression = errors.New("empty sort expression")

// ParseSortExpression parses "key" or "key:asc" or "key:desc".
// A bare key sorts descending.
func ParseSortExpression(expr string) (SortState, error) {
	if strings.TrimSpace(expr) == "" {
		return SortState{}, ErrEmptySortExpression
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortExpressionParts {
		return SortState{}, fmt.Errorf("invalid format: too many colons in %q", expr)
	}

	key := strings.TrimSpace(parts[0])
	if key == "" {
		return SortState{}, ErrEmptySortExpression
	}

	state := SortState{Key: key, Order: SortDescending}
	if len(parts) == sortExpressionParts {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc":
			state.Order = SortAscending
		case "desc":
			state.Order = SortDescending
		default:
			return SortState{}, fmt.Errorf("invalid sort order: %q (must be asc or desc)", parts[1])
		}
	}
	return state, nil
}
