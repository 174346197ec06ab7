package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/format"
	"github.com/benjaminwootton/QueryDog-sub000/pkg/client"
)

func newQueryLogCmd(api clientFactory) *cobra.Command {
	var (
		since     time.Duration
		search    string
		limit     int
		offset    int
		sortField string
		sortOrder string
		filters   []string
		grouped   bool
	)

	cmd := &cobra.Command{
		Use:   "query-log",
		Short: "List recent entries from system.query_log",
		Example: `  # Slowest queries of the last hour
  querydog query-log --since 1h --sort query_duration_ms

  # Failed queries only
  querydog query-log --filter type=ExceptionWhileProcessing

  # Collapse entries by normalized query shape
  querydog query-log --grouped --since 24h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fieldFilters, err := parseFilterFlags(filters)
			if err != nil {
				return err
			}
			now := time.Now()
			params := client.Params{
				Start:     now.Add(-since),
				End:       now,
				Search:    search,
				SortField: sortField,
				SortOrder: strings.ToUpper(sortOrder),
				Limit:     limit,
				Offset:    offset,
				Filters:   fieldFilters,
			}
			if grouped {
				return runGroupedQueryLog(cmd, api(), params)
			}
			return runQueryLog(cmd, api(), params)
		},
	}

	cmd.Flags().DurationVar(&since, "since", 6*time.Hour, "Window length ending now")
	cmd.Flags().StringVar(&search, "search", "", "Substring match on query text")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum rows to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	cmd.Flags().StringVar(&sortField, "sort", "", "Sort column")
	cmd.Flags().StringVar(&sortOrder, "order", "desc", "Sort direction (asc, desc)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Column filter as column=value; repeated columns OR together")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "Collapse entries by normalized query shape")

	return cmd
}

func runQueryLog(cmd *cobra.Command, c *client.Client, params client.Params) error {
	rows, err := c.QueryLog(cmd.Context(), params)
	if err != nil {
		return err
	}
	if getOutputFormat(cmd) == "json" {
		return printJSON(os.Stdout, rows)
	}
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{
			row["event_time"].Display(),
			row["type"].Display(),
			row["user"].Display(),
			format.DurationMs(row["query_duration_ms"].Num),
			format.Count(toUint(row["read_rows"].Num)),
			format.Bytes(toUint(row["memory_usage"].Num)),
			truncate(oneLine(row["query"].Display()), 80),
		})
	}
	printTable(os.Stdout, []string{"event_time", "type", "user", "duration", "read_rows", "memory", "query"}, table)
	return nil
}

func runGroupedQueryLog(cmd *cobra.Command, c *client.Client, params client.Params) error {
	groups, err := c.QueryLogGrouped(cmd.Context(), params)
	if err != nil {
		return err
	}
	if getOutputFormat(cmd) == "json" {
		return printJSON(os.Stdout, groups)
	}
	table := make([][]string, 0, len(groups))
	for _, g := range groups {
		table = append(table, []string{
			format.Count(g.Count),
			format.DurationMs(g.AvgDurationMs),
			format.DurationMs(g.MaxDurationMs),
			format.Count(toUint(g.SumReadRows)),
			format.Bytes(toUint(g.SumMemoryUsage)),
			truncate(oneLine(g.Query), 80),
		})
	}
	printTable(os.Stdout, []string{"count", "avg_duration", "max_duration", "read_rows", "memory", "query"}, table)
	return nil
}

// parseFilterFlags turns repeated column=value pairs into field filters.
// Repeating a column ORs its values together.
func parseFilterFlags(pairs []string) (domain.FieldFilters, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	filters := make(domain.FieldFilters, len(pairs))
	for _, pair := range pairs {
		column, value, ok := strings.Cut(pair, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("invalid filter %q: expected column=value", pair)
		}
		filters[column] = append(filters[column], value)
	}
	return filters, nil
}
