package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/format"
)

func newExplainCmd(api clientFactory) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "explain <sql>",
		Short: "Run EXPLAIN against a query",
		Example: `  # Logical plan
  querydog explain "SELECT count() FROM system.query_log"

  # Which indexes a filter can use
  querydog explain --type indexes "SELECT * FROM hits WHERE date = today()"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explainType := domain.ExplainType(kind)
			if !explainType.Valid() {
				return fmt.Errorf("unsupported explain type %q: use one of plan, indexes, pipeline, ast, syntax, estimate", kind)
			}
			lines, err := api().Explain(cmd.Context(), explainType, args[0])
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, lines)
			}
			for _, line := range lines {
				fmt.Fprintln(os.Stdout, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", string(domain.ExplainPlan), "Explain variant (plan, indexes, pipeline, ast, syntax, estimate)")

	return cmd
}

func newQueryCmd(api clientFactory) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Execute a read-only SQL query",
		Long:  "Execute a read-only SQL query against the monitored server.\nSQL is taken from the argument, or from stdin when piped.",
		Example: `  querydog query "SELECT database, count() FROM system.tables GROUP BY database"

  cat report.sql | querydog query --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql := ""
			if len(args) == 1 {
				sql = args[0]
			}
			if sql == "" {
				stat, _ := os.Stdin.Stat()
				if (stat.Mode() & os.ModeCharDevice) == 0 {
					data, err := io.ReadAll(os.Stdin)
					if err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
					sql = strings.TrimSpace(string(data))
				}
			}
			if sql == "" {
				return fmt.Errorf("provide SQL as an argument or via stdin pipe")
			}
			result, err := api().Query(cmd.Context(), domain.QueryRequest{Query: sql, Limit: limit})
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, result)
			}
			columns := make([]string, len(result.Columns))
			for i, col := range result.Columns {
				columns[i] = col.Name
			}
			rows := make([][]string, len(result.Data))
			for i, row := range result.Data {
				cells := make([]string, len(columns))
				for j, name := range columns {
					cells[j] = row[name].Display()
				}
				rows[i] = cells
			}
			printTable(os.Stdout, columns, rows)
			fmt.Fprintf(os.Stderr, "\n(%d rows in %s)\n", result.RowCount, format.DurationMs(result.Duration))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Row limit applied server-side")

	return cmd
}

func newHealthCmd(api clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server can reach ClickHouse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := api().Health(cmd.Context()); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]string{"status": "ok"})
			}
			fmt.Fprintln(os.Stdout, "ok")
			return nil
		},
	}
}
