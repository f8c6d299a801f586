// Package pagination slices list output for non-interactive commands.
//
// Two mutually exclusive modes are supported:
//   - Offset-based: --limit and --offset
//   - Page-based: --page and --page-size
//
// PaginationMeta describes the page that was produced.
package pagination
