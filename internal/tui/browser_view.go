package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rshade/varbrowse/internal/query"
	"github.com/rshade/varbrowse/internal/variant"
)

// View implements tea.Model.
func (m *BrowserModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateError:
		return RenderError(m.err)
	case ViewStateDetail:
		if m.detail >= 0 && m.detail < len(m.rows) {
			return RenderVariantDetail(m.rows[m.detail], m.width)
		}
		return "No variant selected."
	default:
		return m.renderList()
	}
}

func (m *BrowserModel) renderList() string {
	title := TitleStyle.Render(m.opts.Title) + "  " + StatusStyle.Render(m.summary())

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		padLines(m.track.View(), m.trackWidth()),
		strings.Repeat(" ", zoneGap),
		m.table.View(),
	)

	return strings.Join([]string{title, body, m.renderStatus(), m.help.View(m.keys)}, "\n")
}

func (m *BrowserModel) summary() string {
	s := fmt.Sprintf("%s of %s variants", variant.FormatCount(len(m.rows)), variant.FormatCount(len(m.all)))
	if st := m.table.Grid().Sort().State(); st.Key != "" {
		s += fmt.Sprintf(" · sorted by %s %s", st.Key, st.Order)
	}
	return s
}

func (m *BrowserModel) renderStatus() string {
	if m.zone == ZoneFilter || m.filter.Value() != "" {
		return "Filter: " + m.filter.View()
	}
	return StatusStyle.Render("Focus: ") + ZoneActiveStyle.Render(m.zone.String())
}

// padLines pads every line of s with spaces to width cells.
func padLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if w := ansi.StringWidth(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}

// RenderError renders a load failure. Errors reported by the API are listed
// one per line.
func RenderError(err error) string {
	var sb strings.Builder
	var gqlErr *query.GraphQLErrors
	var httpErr *query.HTTPError

	switch {
	case errors.As(err, &gqlErr):
		sb.WriteString(ErrorStyle.Render("The API rejected the query:"))
		sb.WriteString("\n")
		for _, e := range gqlErr.Errors {
			fmt.Fprintf(&sb, "  - %s\n", e.Message)
		}
	case errors.As(err, &httpErr):
		sb.WriteString(ErrorStyle.Render(fmt.Sprintf("Request failed: %s", httpErr.Status)))
		sb.WriteString("\n")
	default:
		sb.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n[r] Retry  [q] Quit")
	return sb.String()
}

// RenderVariantDetail renders every field of one variant.
func RenderVariantDetail(v variant.Variant, width int) string {
	_ = width

	flags := strings.Join(v.Flags, ", ")
	if flags == "" {
		flags = "none"
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(v.VariantID))
	sb.WriteString("\n\n")
	for _, f := range []struct{ label, value string }{
		{"Position", variant.FormatPosition(v)},
		{"Change", v.Ref + " > " + v.Alt},
		{"Consequence", variant.ConsequenceLabel(v.Consequence)},
		{"HGVS", v.HGVS},
		{"Flags", flags},
		{"Allele count", variant.FormatCount(v.AlleleCount)},
		{"Allele number", variant.FormatCount(v.AlleleNumber)},
		{"Allele frequency", variant.FormatFrequency(v.AlleleFrequency)},
		{"Homozygotes", variant.FormatCount(v.HomozygoteCount)},
	} {
		sb.WriteString(LabelStyle.Render(f.label + ":"))
		sb.WriteString(f.value)
		sb.WriteString("\n")
	}
	sb.WriteString("\n[Esc] Back to list  [q] Quit")
	return sb.String()
}
