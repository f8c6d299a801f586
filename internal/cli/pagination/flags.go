package pagination

import (
	"errors"

	"github.com/spf13/cobra"
)

// Defaults and limits.
const (
	DefaultLimit  = 0 // no limit
	DefaultOffset = 0
	MaxPageSize   = 10000
)

// Validation errors.
var (
	ErrNegative             = errors.New("pagination values cannot be negative")
	ErrMixedPaginationModes = errors.New("cannot use both --offset and --page")
	ErrPageSizeWithoutPage  = errors.New("--page-size requires --page")
	ErrPageWithoutPageSize  = errors.New("--page requires --page-size")
	ErrPageSizeTooLarge     = errors.New("page-size must be at most 10000")
)

// PaginationParams holds the pagination flags of a command.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Limit is the maximum number of items (offset mode). Zero means all.
	Limit int

	// Offset is the number of items to skip (offset mode).
	Offset int

	// Page is the 1-based page number (page mode). Zero disables page mode.
	Page int

	// PageSize is the number of items per page (page mode).
	PageSize int
}

// NewPaginationParams returns parameters that select every item.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{Limit: DefaultLimit, Offset: DefaultOffset}
}

// AddFlags registers --limit, --offset, --page and --page-size on cmd.
func AddFlags(cmd *cobra.Command, p *PaginationParams) {
	cmd.Flags().IntVar(&p.Limit, "limit", p.Limit, "maximum number of rows to print (0 = all)")
	cmd.Flags().IntVar(&p.Offset, "offset", p.Offset, "number of rows to skip")
	cmd.Flags().IntVar(&p.Page, "page", p.Page, "1-based page to print (requires --page-size)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", p.PageSize, "rows per page")
}

// Validate checks bounds and that only one mode is in use.
func (p PaginationParams) Validate() error {
	if p.Limit < 0 || p.Offset < 0 || p.Page < 0 || p.PageSize < 0 {
		return ErrNegative
	}
	if p.Page > 0 && p.Offset > 0 {
		return ErrMixedPaginationModes
	}
	if p.Page == 0 && p.PageSize > 0 {
		return ErrPageSizeWithoutPage
	}
	if p.Page > 0 && p.PageSize == 0 {
		return ErrPageWithoutPageSize
	}
	if p.PageSize > MaxPageSize {
		return ErrPageSizeTooLarge
	}
	return nil
}

// IsPageBased returns true if page mode is active.
func (p PaginationParams) IsPageBased() bool {
	return p.Page > 0
}

// CalculateOffsetLimit returns the effective offset and limit. A zero limit
// means no limit.
//
//nolint:nonamedreturns // Named returns document the pair.
func (p PaginationParams) CalculateOffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the slice of items selected by p. In page mode a page past
// the end is clamped to the last page.
func Apply[T any](p PaginationParams, items []T) []T {
	if len(items) == 0 {
		return items
	}

	offset, limit := p.CalculateOffsetLimit()
	if p.IsPageBased() && offset >= len(items) {
		offset = ((len(items) - 1) / p.PageSize) * p.PageSize
	}
	if offset >= len(items) {
		return items[:0]
	}

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
