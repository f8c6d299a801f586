package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/varbrowse/internal/cli/pagination"
	"github.com/rshade/varbrowse/internal/config"
	"github.com/rshade/varbrowse/internal/grid"
	"github.com/rshade/varbrowse/internal/query"
	"github.com/rshade/varbrowse/internal/query/cache"
	"github.com/rshade/varbrowse/internal/tui"
	"github.com/rshade/varbrowse/internal/variant"
)

// ErrNoEndpoint is returned when no files are given and no API endpoint is configured.
var ErrNoEndpoint = errors.New("no variant files given and no api endpoint configured")

// ErrUnknownSortKey is returned for a --sort key no column sorts by.
var ErrUnknownSortKey = errors.New("unknown sort key")

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

type browseParams struct {
	sort     string
	dataset  string
	endpoint string
	noCache  bool
	plain    bool
	page     *pagination.PaginationParams
}

func newBrowseCmd() *cobra.Command {
	params := browseParams{page: pagination.NewPaginationParams()}

	cmd := &cobra.Command{
		Use:   "browse [files...]",
		Short: "Browse variants in the interactive grid",
		Long: `Opens the variant table and its linked position track.

Rows come from the given YAML or JSON files, or from the configured GraphQL
API when no files are given. When stdout is not a terminal, or with --plain,
the sorted rows are printed as a table instead.`,
		Example: `  # Browse local files
  varbrowse browse chr1.yaml chr2.json

  # Browse a dataset with a custom initial sort
  varbrowse browse --dataset gnomad_r4 --sort af:desc

  # Print the second page of 50 rows
  varbrowse browse chr1.yaml --plain --page 2 --page-size 50`,
		Annotations: map[string]string{annotationOwnsTerminal: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, args, params)
		},
	}

	cmd.Flags().StringVar(&params.sort, "sort", "", "initial sort as key[:asc|desc] (keys: "+
		strings.Join(variant.SortKeys(), ", ")+")")
	cmd.Flags().StringVar(&params.dataset, "dataset", "", "dataset id to query")
	cmd.Flags().StringVar(&params.endpoint, "endpoint", "", "GraphQL endpoint URL")
	cmd.Flags().BoolVar(&params.noCache, "no-cache", false, "bypass the response cache")
	cmd.Flags().BoolVar(&params.plain, "plain", false, "print a plain table instead of the TUI")
	pagination.AddFlags(cmd, params.page)

	return cmd
}

func runBrowse(cmd *cobra.Command, args []string, params browseParams) error {
	ctx := cmd.Context()

	cfg := *config.GetGlobalConfig()
	if params.dataset != "" {
		cfg.API.Dataset = params.dataset
	}
	if params.endpoint != "" {
		cfg.API.Endpoint = params.endpoint
	}
	if params.sort != "" {
		cfg.Grid.DefaultSort = params.sort
	}
	if params.noCache {
		cfg.Cache.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := params.page.Validate(); err != nil {
		return err
	}

	sortState, err := parseSort(cfg.Grid.DefaultSort)
	if err != nil {
		return err
	}

	opts := tui.DefaultOptions()
	opts.Overscan = cfg.Grid.Overscan
	opts.TableRowHeight = cfg.Grid.TableRowHeight
	opts.TrackRowHeight = cfg.Grid.TrackRowHeight
	opts.Sort = sortState

	interactive := !params.plain && stdoutIsTerminal(cmd)

	if len(args) > 0 {
		rows, loadErr := variant.LoadFiles(ctx, args...)
		if loadErr != nil {
			return fmt.Errorf("loading variants: %w", loadErr)
		}
		logger.Debug().Ctx(ctx).Int("rows", len(rows)).Strs("files", args).Msg("variants loaded")
		if !interactive {
			return renderPlain(cmd.OutOrStdout(), rows, sortState, params.page)
		}
		m, modelErr := tui.NewBrowserModel(ctx, rows, opts)
		if modelErr != nil {
			return modelErr
		}
		return runProgram(cmd, m)
	}

	if cfg.API.Endpoint == "" {
		return ErrNoEndpoint
	}
	client, err := newGraphQLClient(cfg)
	if err != nil {
		return err
	}
	fetch := variant.Fetch(client)
	req := variant.VariantsRequest(cfg.API.Dataset)

	if !interactive {
		rows, fetchErr := fetch(ctx, req)
		if fetchErr != nil {
			return fmt.Errorf("fetching variants: %w", fetchErr)
		}
		return renderPlain(cmd.OutOrStdout(), rows, sortState, params.page)
	}

	q := query.New(ctx, fetch)
	m, err := tui.NewBrowserModelWithQuery(ctx, q, req, opts)
	if err != nil {
		return err
	}
	return runProgram(cmd, m)
}

// parseSort parses a sort expression and checks that a column sorts by its key.
// An empty expression selects the default order.
func parseSort(expr string) (grid.SortState, error) {
	if strings.TrimSpace(expr) == "" {
		return tui.DefaultOptions().Sort, nil
	}
	state, err := grid.ParseSortExpression(expr)
	if err != nil {
		return grid.SortState{}, err
	}
	if _, ok := variant.Comparator(state.Key); !ok {
		return grid.SortState{}, fmt.Errorf("%w %q (valid: %s)",
			ErrUnknownSortKey, state.Key, strings.Join(variant.SortKeys(), ", "))
	}
	return state, nil
}

func newGraphQLClient(cfg config.Config) (*query.GraphQLClient, error) {
	opts := []query.ClientOption{
		query.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		query.WithLogger(logger),
	}
	if cfg.Cache.Enabled {
		store, err := cache.NewFileStore(cfg.Cache.Directory, cfg.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("opening response cache: %w", err)
		}
		opts = append(opts, query.WithCache(store))
	}
	return query.NewGraphQLClient(cfg.API.Endpoint, opts...), nil
}

func runProgram(cmd *cobra.Command, m *tui.BrowserModel) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	if m.State() == tui.ViewStateError && m.Err() != nil {
		return fmt.Errorf("loading variants: %w", m.Err())
	}
	return nil
}

// renderPlain prints the sorted rows as an aligned table followed by a page footer.
func renderPlain(
	w io.Writer,
	rows []variant.Variant,
	state grid.SortState,
	page *pagination.PaginationParams,
) error {
	sorted := variant.Sort(rows, state)
	shown := pagination.Apply(*page, sorted)

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "VARIANT\tPOSITION\tCONSEQUENCE\tAC\tAN\tAF\tHOM\tFLAGS")
	for _, v := range shown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.VariantID,
			variant.FormatPosition(v),
			variant.ConsequenceLabel(v.Consequence),
			variant.FormatCount(v.AlleleCount),
			variant.FormatCount(v.AlleleNumber),
			variant.FormatFrequency(v.AlleleFrequency),
			variant.FormatCount(v.HomozygoteCount),
			strings.Join(v.Flags, ","),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	if page.Limit > 0 || page.IsPageBased() {
		meta := pagination.NewPaginationMeta(*page, len(sorted))
		fmt.Fprintln(w)
		fmt.Fprintln(w, meta.String())
	}
	return nil
}

// isWriterTerminal checks if the writer is a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

func stdoutIsTerminal(cmd *cobra.Command) bool {
	return isWriterTerminal(cmd.OutOrStdout())
}
