package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/format"
)

func newProcessesCmd(api clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "processes",
		Short: "List queries currently running on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := api().Processes(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.QueryID,
					e.User,
					format.Seconds(e.Elapsed),
					format.Count(e.ReadRows),
					format.Bytes(uint64(max(e.MemoryUsage, 0))),
					truncate(oneLine(e.Query), 60),
				})
			}
			printTable(os.Stdout, []string{"query_id", "user", "elapsed", "read_rows", "memory", "query"}, rows)
			return nil
		},
	}
}

func newMergesCmd(api clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "merges",
		Short: "List merges and mutations currently in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := api().Merges(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.Database + "." + e.Table,
					e.ResultPartName,
					format.Percent(e.Progress),
					format.Seconds(e.Elapsed),
					strconv.FormatUint(e.NumParts, 10),
					format.Bytes(e.TotalSizeBytes),
					format.Bytes(e.MemoryUsage),
				})
			}
			printTable(os.Stdout, []string{"table", "result_part", "progress", "elapsed", "parts", "size", "memory"}, rows)
			return nil
		},
	}
}

func newMutationsCmd(api clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "mutations",
		Short: "List mutations with their completion state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := api().Mutations(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				done := "no"
				if e.IsDone {
					done = "yes"
				}
				rows = append(rows, []string{
					e.Database + "." + e.Table,
					e.MutationID,
					truncate(oneLine(e.Command), 60),
					format.Time(time.Time(e.CreateTime)),
					strconv.FormatInt(e.PartsToDo, 10),
					done,
					truncate(e.LatestFailReason, 40),
				})
			}
			printTable(os.Stdout, []string{"table", "mutation", "command", "created", "parts_to_do", "done", "fail_reason"}, rows)
			return nil
		},
	}
}

func newMetricsCmd(api clientFactory) *cobra.Command {
	var (
		async  bool
		events bool
		search string
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show server metrics, async metrics or profile events",
		Example: `  # Current metric gauges
  querydog metrics --search Memory

  # Background measurements
  querydog metrics --async

  # Cumulative profile events
  querydog metrics --events --search Read`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if async && events {
				return fmt.Errorf("--async and --events are mutually exclusive")
			}
			var (
				entries []domain.MetricEntry
				err     error
			)
			c := api()
			switch {
			case async:
				entries, err = c.AsyncMetrics(cmd.Context(), search)
			case events:
				entries, err = c.Events(cmd.Context(), search)
			default:
				entries, err = c.Metrics(cmd.Context(), search)
			}
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.Name,
					strconv.FormatFloat(e.Value, 'f', -1, 64),
					truncate(e.Description, 70),
				})
			}
			printTable(os.Stdout, []string{"name", "value", "description"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&async, "async", false, "Show system.asynchronous_metrics instead")
	cmd.Flags().BoolVar(&events, "events", false, "Show system.events instead")
	cmd.Flags().StringVar(&search, "search", "", "Filter names by substring")

	return cmd
}
