package variant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/varbrowse/internal/grid"
	"github.com/rshade/varbrowse/internal/variant"
)

func sampleVariants() []variant.Variant {
	return []variant.Variant{
		{VariantID: "2-100-A-T", Chrom: "2", Pos: 100, Consequence: "missense_variant", AlleleCount: 5, AlleleFrequency: 0.01},
		{VariantID: "X-50-G-C", Chrom: "X", Pos: 50, Consequence: "synonymous_variant", AlleleCount: 5, AlleleFrequency: 0.2},
		{VariantID: "10-7-C-G", Chrom: "10", Pos: 7, Consequence: "frameshift_variant", AlleleCount: 1, AlleleFrequency: 0.0001},
		{VariantID: "2-90-T-A", Chrom: "2", Pos: 90, Consequence: "missense_variant", AlleleCount: 9, AlleleFrequency: 0.5,
			HGVS: "p.Arg12Cys", Flags: []string{"LC LoF"}},
	}
}

func ids(rows []variant.Variant) []string {
	out := make([]string, len(rows))
	for i, v := range rows {
		out[i] = v.VariantID
	}
	return out
}

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		state grid.SortState
		want  []string
	}{
		{
			name:  "position ascending uses chromosome order",
			state: grid.SortState{Key: variant.KeyVariantID, Order: grid.SortAscending},
			want:  []string{"2-90-T-A", "2-100-A-T", "10-7-C-G", "X-50-G-C"},
		},
		{
			name:  "position descending",
			state: grid.SortState{Key: variant.KeyVariantID, Order: grid.SortDescending},
			want:  []string{"X-50-G-C", "10-7-C-G", "2-100-A-T", "2-90-T-A"},
		},
		{
			name:  "ties keep input order ascending",
			state: grid.SortState{Key: variant.KeyAlleleCount, Order: grid.SortAscending},
			want:  []string{"10-7-C-G", "2-100-A-T", "X-50-G-C", "2-90-T-A"},
		},
		{
			name:  "ties keep input order descending",
			state: grid.SortState{Key: variant.KeyAlleleCount, Order: grid.SortDescending},
			want:  []string{"2-90-T-A", "2-100-A-T", "X-50-G-C", "10-7-C-G"},
		},
		{
			name:  "frequency",
			state: grid.SortState{Key: variant.KeyFrequency, Order: grid.SortDescending},
			want:  []string{"2-90-T-A", "X-50-G-C", "2-100-A-T", "10-7-C-G"},
		},
		{
			name:  "unknown key leaves order",
			state: grid.SortState{Key: "nope", Order: grid.SortAscending},
			want:  []string{"2-100-A-T", "X-50-G-C", "10-7-C-G", "2-90-T-A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := sampleVariants()
			got := variant.Sort(rows, tt.state)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, "2-100-A-T", rows[0].VariantID, "input is not modified")
		})
	}
}

func TestSortKeys(t *testing.T) {
	keys := variant.SortKeys()
	assert.Contains(t, keys, variant.KeyFrequency)
	assert.NotContains(t, keys, variant.KeyHGVS)
	assert.IsNonDecreasing(t, keys)

	for _, col := range variant.TableColumns() {
		_, ok := variant.Comparator(col.Key)
		assert.Equal(t, col.IsSortable, ok, col.Key)
	}
}
