package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/varbrowse/internal/grid"
	"github.com/rshade/varbrowse/internal/grid/scrollsync"
	"github.com/rshade/varbrowse/internal/logging"
	"github.com/rshade/varbrowse/internal/query"
	"github.com/rshade/varbrowse/internal/variant"
)

// ViewState is the top-level state of the browser.
type ViewState int

const (
	// ViewStateLoading shows a spinner while rows are fetched.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the linked grids.
	ViewStateList
	// ViewStateDetail shows one variant.
	ViewStateDetail
	// ViewStateError shows why loading failed.
	ViewStateError
	// ViewStateQuitting renders nothing while the program exits.
	ViewStateQuitting
)

// Zone is the part of the page that owns the keyboard.
type Zone int

const (
	// ZoneTable is the variant table.
	ZoneTable Zone = iota
	// ZoneTrack is the position track.
	ZoneTrack
	// ZoneFilter is the filter input.
	ZoneFilter

	numZones = 3
)

func (z Zone) String() string {
	switch z {
	case ZoneTable:
		return "table"
	case ZoneTrack:
		return "track"
	case ZoneFilter:
		return "filter"
	default:
		return fmt.Sprintf("Zone(%d)", int(z))
	}
}

// Layout.
const (
	defaultWidth  = 120
	defaultHeight = 30

	trackWidth    = 30
	zoneGap       = 1
	titleLines    = 1
	footerLines   = 2
	minGridHeight = 2

	filterInputCharLimit = 64
	filterInputWidth     = 40

	detailLabelWidth = 18
)

// Options configures a BrowserModel.
type Options struct {
	Title string

	// Overscan is the number of rows materialized beyond each viewport edge.
	// Zero disables overscan.
	Overscan int

	TableRowHeight int
	TrackRowHeight int

	// Sort is the initial order of the table.
	Sort grid.SortState
}

// DefaultOptions returns the default page options.
func DefaultOptions() Options {
	return Options{
		Title:          "varbrowse",
		Overscan:       grid.DefaultOverscan,
		TableRowHeight: variant.TableRowHeight,
		TrackRowHeight: variant.TrackRowHeight,
		Sort:           grid.SortState{Key: variant.KeyVariantID, Order: grid.SortAscending},
	}
}

type variantGrid = grid.Model[variant.Variant]

// BrowserModel is the Bubble Tea model of the variant browser page.
type BrowserModel struct {
	ctx    context.Context
	logger zerolog.Logger
	opts   Options

	state  ViewState
	all    []variant.Variant // source of truth
	rows   []variant.Variant // filtered and sorted, shared by both grids
	detail int

	track *variantGrid
	table *variantGrid
	sync  *scrollsync.Synchronizer

	zone     Zone
	lastGrid Zone
	filter   textinput.Model
	help     help.Model
	keys     KeyMap

	loading *LoadingState
	query   *query.Query[[]variant.Variant]
	request query.Request

	width  int
	height int
	err    error
}

// NewBrowserModel returns a browser showing rows.
func NewBrowserModel(ctx context.Context, rows []variant.Variant, opts Options) (*BrowserModel, error) {
	m, err := newBrowserModel(ctx, opts)
	if err != nil {
		return nil, err
	}
	m.state = ViewStateList
	m.setVariants(rows)
	return m, nil
}

// NewBrowserModelWithQuery returns a browser that starts loading req through q.
func NewBrowserModelWithQuery(
	ctx context.Context,
	q *query.Query[[]variant.Variant],
	req query.Request,
	opts Options,
) (*BrowserModel, error) {
	m, err := newBrowserModel(ctx, opts)
	if err != nil {
		return nil, err
	}
	m.state = ViewStateLoading
	m.loading = NewLoadingState("Loading variants...")
	m.query = q
	m.request = req
	return m, nil
}

func newBrowserModel(ctx context.Context, opts Options) (*BrowserModel, error) {
	if opts.TableRowHeight < 1 {
		opts.TableRowHeight = variant.TableRowHeight
	}
	if opts.TrackRowHeight < 1 {
		opts.TrackRowHeight = variant.TrackRowHeight
	}
	// grid.Options reads zero as "default" and negative as "none".
	overscan := opts.Overscan
	if overscan <= 0 {
		overscan = -1
	}

	table, err := grid.New(grid.Options[variant.Variant]{
		Columns:     variant.TableColumns(),
		RowKey:      variant.RowKey,
		RowHeight:   opts.TableRowHeight,
		Overscan:    overscan,
		InitialSort: opts.Sort,
		CellContext: variant.Highlight{},
	})
	if err != nil {
		return nil, fmt.Errorf("creating table grid: %w", err)
	}
	track, err := grid.New(grid.Options[variant.Variant]{
		Columns:     variant.TrackColumns(),
		RowKey:      variant.RowKey,
		RowHeight:   opts.TrackRowHeight,
		Overscan:    overscan,
		CellContext: variant.Highlight{},
	})
	if err != nil {
		return nil, fmt.Errorf("creating track grid: %w", err)
	}

	logger := logging.ComponentLogger(*logging.FromContext(ctx), "tui")

	m := &BrowserModel{
		ctx:      ctx,
		logger:   logger,
		opts:     opts,
		table:    grid.NewModel(table, defaultWidth, defaultHeight),
		track:    grid.NewModel(track, trackWidth, defaultHeight),
		filter:   newFilterInput(),
		help:     help.New(),
		keys:     DefaultKeyMap(),
		zone:     ZoneTable,
		lastGrid: ZoneTable,
	}

	m.sync = scrollsync.Link(table.Viewport(), track.Viewport()).WithLogger(logger)
	table.OnScroll = m.sync.OnScrollA
	track.OnScroll = m.sync.OnScrollB
	table.OnHoverRow = func(row int) { track.Hover(row) }
	track.OnHoverRow = func(row int) { table.Hover(row) }
	table.OnRequestSort = m.onRequestSort
	table.OnActivate = m.onActivate

	m.SetSize(defaultWidth, defaultHeight)
	return m, nil
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Filter variants..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// State returns the current view state.
func (m *BrowserModel) State() ViewState { return m.state }

// Zone returns the zone that owns the keyboard.
func (m *BrowserModel) Zone() Zone { return m.zone }

// Rows returns the rows currently shown, filtered and sorted.
func (m *BrowserModel) Rows() []variant.Variant { return m.rows }

// Table returns the variant table grid.
func (m *BrowserModel) Table() *grid.Model[variant.Variant] { return m.table }

// Track returns the position track grid.
func (m *BrowserModel) Track() *grid.Model[variant.Variant] { return m.track }

// Err returns the load error shown in the error state.
func (m *BrowserModel) Err() error { return m.err }

// SetSize lays out the page for a terminal of the given size.
func (m *BrowserModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	gridHeight := height - titleLines - footerLines
	if gridHeight < minGridHeight {
		gridHeight = minGridHeight
	}
	tw := m.trackWidth()
	tableWidth := width - tw - zoneGap
	if tableWidth < 0 {
		tableWidth = 0
	}
	m.track.SetSize(tw, gridHeight)
	m.table.SetSize(tableWidth, gridHeight)
}

func (m *BrowserModel) trackWidth() int {
	if w := m.width / 3; w < trackWidth {
		return w
	}
	return trackWidth
}

// Init implements tea.Model.
func (m *BrowserModel) Init() tea.Cmd {
	switch m.state {
	case ViewStateLoading:
		return tea.Batch(m.loading.Init(), m.query.Run(m.request))
	case ViewStateList:
		return m.setZone(m.zone)
	default:
		return nil
	}
}

// Update implements tea.Model.
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case query.ResultMsg[[]variant.Variant]:
		return m, m.handleResult(msg)
	case grid.FocusCommitMsg:
		m.table.Update(msg)
		m.track.Update(msg)
		return m, nil
	case tea.BlurMsg:
		// The terminal lost focus, so nothing in the browser owns it.
		if m.state == ViewStateList {
			m.table.Blur()
			m.track.Blur()
			m.filter.Blur()
		}
		return m, nil
	case tea.FocusMsg:
		if m.state != ViewStateList {
			return m, nil
		}
		return m, m.setZone(m.zone)
	case tea.MouseMsg:
		if m.state != ViewStateList {
			return m, nil
		}
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	switch {
	case m.state == ViewStateLoading:
		return m, m.loading.Update(msg)
	case m.zone == ZoneFilter:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *BrowserModel) handleResult(msg query.ResultMsg[[]variant.Variant]) tea.Cmd {
	if m.query == nil {
		return nil
	}
	st, ok := m.query.Resolve(msg)
	if !ok {
		return nil
	}
	if st.Err != nil {
		m.err = st.Err
		m.state = ViewStateError
		m.logger.Error().Err(st.Err).Str("request_key", msg.Request.Key()).Msg("loading variants failed")
		return nil
	}

	m.logger.Info().Int("rows", len(st.Data)).Msg("variants loaded")
	m.err = nil
	m.state = ViewStateList
	m.setVariants(st.Data)
	return m.setZone(m.lastGrid)
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	switch m.state {
	case ViewStateLoading, ViewStateQuitting:
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return nil
	case ViewStateError:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Retry):
			return m.reload()
		}
		return nil
	case ViewStateDetail:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Back):
			m.state = ViewStateList
		}
		return nil
	}

	if m.zone == ZoneFilter {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.NextZone):
		return m.cycleZone(1)
	case key.Matches(msg, m.keys.PrevZone):
		return m.cycleZone(-1)
	case key.Matches(msg, m.keys.Filter):
		return m.setZone(ZoneFilter)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Retry):
		return m.reload()
	case key.Matches(msg, m.keys.Back):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyRows()
		}
		return nil
	}

	_, cmd := m.activeGrid().Update(msg)
	return cmd
}

func (m *BrowserModel) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextZone):
		return m.cycleZone(1)
	case key.Matches(msg, m.keys.PrevZone):
		return m.cycleZone(-1)
	case key.Matches(msg, m.keys.Accept), key.Matches(msg, m.keys.Back):
		return m.setZone(m.lastGrid)
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyRows()
	}
	return cmd
}

// handleMouse routes a mouse event to the grid under the pointer, in that
// grid's coordinates. A click moves keyboard ownership to that grid.
func (m *BrowserModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	tw := m.trackWidth()
	local := msg
	local.Y -= titleLines

	target, zone, other := m.table, ZoneTable, m.track
	if msg.X < tw {
		target, zone, other = m.track, ZoneTrack, m.table
	} else {
		local.X -= tw + zoneGap
	}

	wasActive := target.Active()
	_, cmd := target.Update(local)
	if !wasActive && target.Active() {
		other.Blur()
		m.filter.Blur()
		m.zone = zone
		m.lastGrid = zone
	}
	return cmd
}

func (m *BrowserModel) cycleZone(step int) tea.Cmd {
	next := (int(m.zone) + step + numZones) % numZones
	return m.setZone(Zone(next))
}

func (m *BrowserModel) setZone(z Zone) tea.Cmd {
	m.table.Blur()
	m.track.Blur()
	m.filter.Blur()
	m.zone = z

	switch z {
	case ZoneTable:
		m.lastGrid = z
		return m.table.Focus()
	case ZoneTrack:
		m.lastGrid = z
		return m.track.Focus()
	case ZoneFilter:
		return m.filter.Focus()
	}
	return nil
}

func (m *BrowserModel) activeGrid() *variantGrid {
	if m.zone == ZoneTrack {
		return m.track
	}
	return m.table
}

func (m *BrowserModel) reload() tea.Cmd {
	if m.query == nil {
		return nil
	}
	cmd := m.query.Refetch()
	if cmd == nil {
		return nil
	}
	m.logger.Debug().Msg("reloading variants")
	m.state = ViewStateLoading
	m.err = nil
	if m.loading == nil {
		m.loading = NewLoadingState("Loading variants...")
	}
	return tea.Batch(m.loading.Init(), cmd)
}

func (m *BrowserModel) quit() tea.Cmd {
	if m.query != nil {
		m.query.Close()
	}
	m.state = ViewStateQuitting
	return tea.Quit
}

func (m *BrowserModel) setVariants(rows []variant.Variant) {
	m.all = rows
	m.applyRows()
}

// applyRows filters and sorts the source rows and hands the result to both
// grids, so row i is the same variant in the track and the table.
func (m *BrowserModel) applyRows() {
	q := m.filter.Value()
	m.rows = variant.Sort(variant.Filter(m.all, q), m.table.Grid().Sort().State())

	hl := variant.Highlight{Terms: variant.Terms(q)}
	m.table.Grid().SetCellContext(hl)
	m.track.Grid().SetCellContext(hl)
	m.table.SetRows(m.rows)
	m.track.SetRows(m.rows)
}

func (m *BrowserModel) onRequestSort(key string) {
	state := m.table.Grid().Sort().State()
	m.logger.Debug().
		Str("column", key).
		Str("order", state.Order.String()).
		Msg("sort requested")
	m.applyRows()
}

func (m *BrowserModel) onActivate(cell grid.Cell) {
	row := cell.DataRow()
	if row < 0 || row >= len(m.rows) {
		return
	}
	m.detail = row
	m.state = ViewStateDetail
}
