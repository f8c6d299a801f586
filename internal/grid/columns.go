package grid

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// defaultGrow is the grow weight of a column that does not set one.
const defaultGrow = 1.0

// Alignment controls horizontal placement of cell content.
type Alignment int

const (
	// AlignLeft places content at the start of the cell.
	AlignLeft Alignment = iota
	// AlignRight places content at the end of the cell (numeric columns).
	AlignRight
)

// RenderFunc renders a row's value for one column.
// cellContext carries caller-defined data (for example search highlight terms)
// and is never inspected by the grid.
type RenderFunc[T any] func(row T, columnKey string, cellContext any) string

// Column describes one grid column.
type Column[T any] struct {
	// Key uniquely identifies the column within a column set.
	Key string

	// Heading is the header cell text.
	Heading string

	// MinWidth is a hard floor on the column width.
	MinWidth float64

	// Grow is the share of leftover width this column receives. Nil means 1.
	Grow *float64

	// IsRowHeader marks the column whose cells label their row.
	IsRowHeader bool

	// IsSortable enables sort requests from the header cell.
	IsSortable bool

	// Interactive marks cells that contain a focusable control (a link or button).
	Interactive bool

	// Align is the content alignment.
	Align Alignment

	// Render produces the cell content.
	Render RenderFunc[T]
}

// GrowFactor returns a pointer suitable for Column.Grow.
func GrowFactor(v float64) *float64 {
	return &v
}

func (c Column[T]) growFactor() float64 {
	if c.Grow == nil {
		return defaultGrow
	}
	return *c.Grow
}

// Column validation errors.
var (
	ErrDuplicateColumnKey = errors.New("duplicate column key")
	ErrEmptyColumnKey     = errors.New("column key cannot be empty")
	ErrNegativeMinWidth   = errors.New("column min width must be >= 0")
	ErrNegativeGrow       = errors.New("column grow must be >= 0")
)

// ValidateColumns checks the column-set preconditions: unique non-empty keys,
// non-negative min widths and grow weights.
func ValidateColumns[T any](cols []Column[T]) error {
	seen := make(map[string]struct{}, len(cols))
	for i, col := range cols {
		if col.Key == "" {
			return fmt.Errorf("column %d: %w", i, ErrEmptyColumnKey)
		}
		if _, dup := seen[col.Key]; dup {
			return fmt.Errorf("column %q: %w", col.Key, ErrDuplicateColumnKey)
		}
		seen[col.Key] = struct{}{}
		if col.MinWidth < 0 {
			return fmt.Errorf("column %q: %w", col.Key, ErrNegativeMinWidth)
		}
		if col.growFactor() < 0 {
			return fmt.Errorf("column %q: %w", col.Key, ErrNegativeGrow)
		}
	}
	return nil
}

// AllocateWidths distributes available width across columns.
//
// Each column gets its MinWidth plus a grow-weighted share of whatever width is
// left after all minimums are satisfied. When available is smaller than the sum
// of minimums, every column gets exactly its minimum and total is that sum, so the
// grid overflows horizontally instead of shrinking columns.
//
//nolint:nonamedreturns // Named returns document the two results.
func AllocateWidths[T any](cols []Column[T], available float64) (widths []float64, total float64) {
	widths = make([]float64, len(cols))
	if len(cols) == 0 {
		return widths, math.Max(available, 0)
	}

	var sumMin, sumGrow float64
	for _, col := range cols {
		sumMin += col.MinWidth
		sumGrow += col.growFactor()
	}
	if sumGrow == 0 {
		sumGrow = 1
	}

	remaining := math.Max(available-sumMin, 0)
	for i, col := range cols {
		widths[i] = col.MinWidth + col.growFactor()/sumGrow*remaining
	}

	return widths, math.Max(available, sumMin)
}

// CellWidths quantizes fractional widths to whole terminal cells.
// Each width is floored, then the cells lost to flooring are handed out one at a
// time to the columns with the largest fractional remainders, so the sum of the
// result equals the rounded sum of the input and no column drops below its floor.
func CellWidths(widths []float64) []int {
	cells := make([]int, len(widths))
	if len(widths) == 0 {
		return cells
	}

	type remainder struct {
		index int
		frac  float64
	}

	var sum float64
	floored := 0
	rems := make([]remainder, len(widths))
	for i, w := range widths {
		sum += w
		f := math.Floor(w)
		cells[i] = int(f)
		floored += cells[i]
		rems[i] = remainder{index: i, frac: w - f}
	}

	missing := int(math.Round(sum)) - floored
	if missing <= 0 {
		return cells
	}

	sort.SliceStable(rems, func(i, j int) bool {
		return rems[i].frac > rems[j].frac
	})
	for i := 0; i < missing && i < len(rems); i++ {
		cells[rems[i].index]++
	}
	return cells
}
