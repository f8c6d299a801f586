package pagination

import "fmt"

// PaginationMeta describes a produced page.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPaginationMeta describes the page p selects out of totalCount rows.
// Without a limit the whole result is one page, and a page past the end is
// reported as the last page, matching Apply.
func NewPaginationMeta(p PaginationParams, totalCount int) PaginationMeta {
	offset, size := p.CalculateOffsetLimit()
	if size == 0 {
		size = totalCount
	}

	meta := PaginationMeta{CurrentPage: 1, PageSize: size, TotalItems: totalCount}
	if size > 0 {
		meta.TotalPages = (totalCount + size - 1) / size
		meta.CurrentPage = offset/size + 1
	}
	meta.CurrentPage = min(meta.CurrentPage, max(meta.TotalPages, 1))
	meta.HasPrevious = meta.CurrentPage > 1
	meta.HasNext = meta.CurrentPage < meta.TotalPages
	return meta
}

// String returns a one-line footer such as "Page 2 of 5 (120 items)".
func (m PaginationMeta) String() string {
	return fmt.Sprintf("Page %d of %d (%d items)", m.CurrentPage, m.TotalPages, m.TotalItems)
}
