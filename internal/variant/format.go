package variant

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// smallFrequency is the threshold below which frequencies use exponent notation.
const smallFrequency = 1e-4

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatFrequency renders an allele frequency as provided by the source.
func FormatFrequency(af float64) string {
	switch {
	case af == 0:
		return "0"
	case af < smallFrequency:
		return strconv.FormatFloat(af, 'e', 2, 64)
	default:
		return printer.Sprintf("%.4f", af)
	}
}

// FormatPosition renders "chrom:pos" with a grouped position.
func FormatPosition(v Variant) string {
	return v.Chrom + ":" + FormatCount(v.Pos)
}

// ConsequenceLabel turns a sequence ontology term into a short label,
// e.g. "missense_variant" into "missense".
func ConsequenceLabel(term string) string {
	label := strings.TrimSuffix(term, "_variant")
	return strings.ReplaceAll(label, "_", " ")
}
