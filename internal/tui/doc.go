// Package tui composes the variant browser page: a compact position track and
// the variant table, scroll-linked, with a filter input and loading, error and
// detail states.
package tui
