package variant

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/varbrowse/internal/grid"
)

// Column keys.
const (
	KeyVariantID   = "variant_id"
	KeyPosition    = "pos"
	KeyConsequence = "consequence"
	KeyHGVS        = "hgvs"
	KeyFlags       = "flags"
	KeyAlleleCount = "ac"
	KeyAlleleNum   = "an"
	KeyFrequency   = "af"
	KeyHomozygotes = "homozygote_count"
)

// Row heights in terminal lines.
const (
	TableRowHeight = 2
	TrackRowHeight = 1
)

// Highlight is the cell context of variant grids: search terms to emphasise.
type Highlight struct {
	Terms []string
}

//nolint:gochecknoglobals // Shared render style.
var matchStyle = lipgloss.NewStyle().Underline(true).Bold(true)

// Apply emphasises every case-insensitive occurrence of the terms in s.
func (h Highlight) Apply(s string) string {
	if len(h.Terms) == 0 || s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		return s
	}

	marks := make([]bool, len(s))
	found := false
	for _, term := range h.Terms {
		term = strings.ToLower(term)
		if term == "" {
			continue
		}
		for from := 0; ; {
			i := strings.Index(lower[from:], term)
			if i < 0 {
				break
			}
			for j := from + i; j < from+i+len(term); j++ {
				marks[j] = true
			}
			found = true
			from += i + len(term)
		}
	}
	if !found {
		return s
	}

	var sb strings.Builder
	for start := 0; start < len(s); {
		end := start
		for end < len(s) && marks[end] == marks[start] {
			end++
		}
		if marks[start] {
			sb.WriteString(matchStyle.Render(s[start:end]))
		} else {
			sb.WriteString(s[start:end])
		}
		start = end
	}
	return sb.String()
}

func highlighted(ctx any, s string) string {
	if h, ok := ctx.(Highlight); ok {
		return h.Apply(s)
	}
	return s
}

func renderText(get func(Variant) string) grid.RenderFunc[Variant] {
	return func(v Variant, _ string, ctx any) string {
		return highlighted(ctx, get(v))
	}
}

// TableColumns is the column set of the variant table.
func TableColumns() []grid.Column[Variant] {
	return []grid.Column[Variant]{
		{
			Key: KeyVariantID, Heading: "Variant ID", MinWidth: 18, Grow: grid.GrowFactor(2),
			IsRowHeader: true, IsSortable: true, Interactive: true,
			Render: renderText(func(v Variant) string { return v.VariantID }),
		},
		{
			Key: KeyConsequence, Heading: "Consequence", MinWidth: 14, IsSortable: true,
			Render: renderText(func(v Variant) string { return ConsequenceLabel(v.Consequence) }),
		},
		{
			Key: KeyHGVS, Heading: "HGVS", MinWidth: 14, Grow: grid.GrowFactor(2),
			Render: renderText(func(v Variant) string { return v.HGVS }),
		},
		{
			Key: KeyFlags, Heading: "Flags", MinWidth: 8, Grow: grid.GrowFactor(0),
			Render: renderText(func(v Variant) string { return strings.Join(v.Flags, " ") }),
		},
		{
			Key: KeyAlleleCount, Heading: "AC", MinWidth: 8, Grow: grid.GrowFactor(0),
			IsSortable: true, Align: grid.AlignRight,
			Render: func(v Variant, _ string, _ any) string { return FormatCount(v.AlleleCount) },
		},
		{
			Key: KeyAlleleNum, Heading: "AN", MinWidth: 10, Grow: grid.GrowFactor(0),
			IsSortable: true, Align: grid.AlignRight,
			Render: func(v Variant, _ string, _ any) string { return FormatCount(v.AlleleNumber) },
		},
		{
			Key: KeyFrequency, Heading: "AF", MinWidth: 10, Grow: grid.GrowFactor(0),
			IsSortable: true, Align: grid.AlignRight,
			Render: func(v Variant, _ string, _ any) string { return FormatFrequency(v.AlleleFrequency) },
		},
		{
			Key: KeyHomozygotes, Heading: "Hom", MinWidth: 6, Grow: grid.GrowFactor(0),
			IsSortable: true, Align: grid.AlignRight,
			Render: func(v Variant, _ string, _ any) string { return FormatCount(v.HomozygoteCount) },
		},
	}
}

// TrackColumns is the compact column set of the position track.
func TrackColumns() []grid.Column[Variant] {
	return []grid.Column[Variant]{
		{
			Key: KeyPosition, Heading: "Position", MinWidth: 14, IsRowHeader: true,
			Render: func(v Variant, _ string, _ any) string { return FormatPosition(v) },
		},
		{
			Key: KeyConsequence, Heading: "Csq", MinWidth: 10,
			Render: renderText(func(v Variant) string { return ConsequenceLabel(v.Consequence) }),
		},
	}
}
