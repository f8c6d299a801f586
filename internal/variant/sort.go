package variant

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rshade/varbrowse/internal/grid"
)

// Compare orders variants for one column.
type Compare func(a, b Variant) int

func comparePosition(a, b Variant) int {
	if c := cmp.Compare(chromRank(a.Chrom), chromRank(b.Chrom)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Pos, b.Pos); c != 0 {
		return c
	}
	return strings.Compare(a.VariantID, b.VariantID)
}

//nolint:gochecknoglobals // Read-only lookup table.
var comparators = map[string]Compare{
	KeyVariantID: comparePosition,
	KeyPosition:  comparePosition,
	KeyConsequence: func(a, b Variant) int {
		return strings.Compare(a.Consequence, b.Consequence)
	},
	KeyAlleleCount: func(a, b Variant) int { return cmp.Compare(a.AlleleCount, b.AlleleCount) },
	KeyAlleleNum:   func(a, b Variant) int { return cmp.Compare(a.AlleleNumber, b.AlleleNumber) },
	KeyFrequency:   func(a, b Variant) int { return cmp.Compare(a.AlleleFrequency, b.AlleleFrequency) },
	KeyHomozygotes: func(a, b Variant) int { return cmp.Compare(a.HomozygoteCount, b.HomozygoteCount) },
}

// Comparator returns the ordering for column key.
func Comparator(key string) (Compare, bool) {
	c, ok := comparators[key]
	return c, ok
}

// SortKeys returns the sortable column keys in a stable order.
func SortKeys() []string {
	keys := make([]string, 0, len(comparators))
	for k := range comparators {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Sort returns a sorted copy of rows. Rows that compare equal keep their
// relative order in both directions. An unknown key returns the rows unchanged.
func Sort(rows []Variant, state grid.SortState) []Variant {
	compare, ok := Comparator(state.Key)
	if !ok {
		return rows
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b Variant) int {
		if state.Order == grid.SortDescending {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}
