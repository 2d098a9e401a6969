package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/killallgit/cardsheet-api/api/types"
	"github.com/killallgit/cardsheet-api/internal/models"
	"github.com/killallgit/cardsheet-api/internal/services/export"
)

type searchOptions struct {
	fields   string
	count    int
	order    string
	dir      string
	unique   string
	currency string
	xlsx     string
	sheet    string
}

var searchOpts searchOptions

// searchCmd runs one card table search from the terminal
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a card search and print the table",
	Long: `Run a card search and print the resulting table.

Arguments are joined into a single query. Rows are printed as aligned
columns; use --xlsx to also write a workbook.

Example:
  cardsheet search "type:legendary" --fields "name type price"
  cardsheet search t:goblin --count 40 --order price --dir desc
  cardsheet search set:neo --unique prints --xlsx out/neo.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	f := searchCmd.Flags()
	f.StringVarP(&searchOpts.fields, "fields", "f", "", "space or comma separated fields (default from config)")
	f.IntVarP(&searchOpts.count, "count", "n", -1, "number of rows, at most 700 (default from config)")
	f.StringVar(&searchOpts.order, "order", models.DefaultOrder, "sort order")
	f.StringVar(&searchOpts.dir, "dir", string(models.DirectionAuto), "sort direction (auto, asc, desc)")
	f.StringVar(&searchOpts.unique, "unique", string(models.UniqueCards), "deduplication (cards, art, prints)")
	f.StringVar(&searchOpts.currency, "currency", "", "price currency code (overrides config)")
	f.StringVar(&searchOpts.xlsx, "xlsx", "", "also write the table to this xlsx file")
	f.StringVar(&searchOpts.sheet, "sheet", "", "worksheet name for --xlsx (default from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if searchOpts.currency != "" {
		cfg.Rates.Target = searchOpts.currency
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	req := searchOpts.request(strings.Join(args, " "), cfg.Search.DefaultFields, cfg.Search.DefaultCount)

	opts := searchOpts
	if opts.sheet == "" {
		opts.sheet = cfg.Export.SheetName
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Search.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Search.RequestTimeout)
		defer cancel()
	}

	return executeSearch(ctx, newSearchService(cfg, log), req, opts, cmd.OutOrStdout())
}

// request builds the search request, filling unset flags from config defaults
func (o searchOptions) request(query, defaultFields string, defaultCount int) models.SearchRequest {
	req := models.SearchRequest{
		Query:     query,
		Fields:    o.fields,
		Count:     o.count,
		Order:     o.order,
		Direction: models.Direction(o.dir),
		Unique:    models.UniqueMode(o.unique),
	}
	if req.Fields == "" {
		req.Fields = defaultFields
	}
	if req.Count < 0 {
		req.Count = defaultCount
		if req.Count <= 0 {
			req.Count = models.DefaultCount
		}
	}
	return req
}

func executeSearch(ctx context.Context, svc types.SearchService, req models.SearchRequest, opts searchOptions, out io.Writer) error {
	table, err := svc.Search(ctx, req)
	if err != nil {
		return err
	}

	if err := writeTable(out, table); err != nil {
		return err
	}

	if opts.xlsx != "" {
		if err := export.SaveXLSX(opts.xlsx, table, opts.sheet); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nwrote %d rows to %s\n", len(table.Rows), opts.xlsx)
	}
	return nil
}

// writeTable prints the header and rows as aligned columns. Multi-line cells
// are flattened onto one line.
func writeTable(out io.Writer, table *models.Table) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Columns, "\t"))
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellText(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func cellText(v any) string {
	switch x := v.(type) {
	case string:
		return strings.Join(strings.Fields(x), " ")
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
