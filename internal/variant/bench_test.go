package variant_test

import (
	"fmt"
	"testing"

	"github.com/rshade/varbrowse/internal/grid"
	"github.com/rshade/varbrowse/internal/variant"
)

// generateVariants builds n rows spread over chromosomes 1..22.
func generateVariants(n int) []variant.Variant {
	consequences := []string{"missense_variant", "synonymous_variant", "stop_gained", "intron_variant"}
	rows := make([]variant.Variant, n)
	for i := range rows {
		chrom := fmt.Sprint(i%22 + 1)
		pos := (i*7919)%250_000_000 + 1
		rows[i] = variant.Variant{
			VariantID:       fmt.Sprintf("%s-%d-A-G", chrom, pos),
			Chrom:           chrom,
			Pos:             pos,
			Consequence:     consequences[i%len(consequences)],
			AlleleCount:     i % 1000,
			AlleleNumber:    1000,
			AlleleFrequency: float64(i%1000) / 1000,
		}
	}
	return rows
}

// BenchmarkSort_Frequency benchmarks a stable sort of 100k rows.
func BenchmarkSort_Frequency(b *testing.B) {
	b.ReportAllocs()
	rows := generateVariants(100_000)
	state := grid.SortState{Key: variant.KeyFrequency, Order: grid.SortDescending}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if sorted := variant.Sort(rows, state); len(sorted) != len(rows) {
			b.Fatal("row count changed")
		}
	}
}

// BenchmarkFilter benchmarks a two-term filter over 100k rows.
func BenchmarkFilter(b *testing.B) {
	b.ReportAllocs()
	rows := generateVariants(100_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = variant.Filter(rows, "missense 12-")
	}
}
