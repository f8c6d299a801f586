// Package grid provides a virtualized, keyboard-accessible data grid.
//
// The package is split into a headless core and a Bubble Tea front end:
//   - AllocateWidths turns column descriptors and an available width into column widths
//   - ComputeWindow and Viewport implement fixed-row-height windowing with overscan
//   - FocusManager implements the roving-tabindex focus model of the ARIA grid pattern
//   - SortController holds the (key, order) sort state toggled from header cells
//   - Grid composes the above around a caller-owned row slice
//   - Model renders a Grid in the terminal with lipgloss
//
// Row data is opaque to the grid: it is only ever inspected through the caller's
// RowKey function and the per-column Render functions. Lengths are abstract units;
// the terminal Model uses lines for heights and cells for widths.
package grid
