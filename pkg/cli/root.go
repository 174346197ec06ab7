// Package cli implements the querydog command line client.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjaminwootton/QueryDog-sub000/pkg/client"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			errObj := map[string]interface{}{
				"error": err.Error(),
			}
			var apiErr *client.APIError
			if errors.As(err, &apiErr) {
				errObj["code"] = apiErr.Code
			}
			_ = printJSON(os.Stdout, errObj)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// clientFactory builds an API client after flag and env resolution has run.
type clientFactory func() *client.Client

func newRootCmd() *cobra.Command {
	var (
		host    string
		output  string
		timeout time.Duration
	)

	rootCmd := &cobra.Command{
		Use:           "querydog",
		Short:         "Query Dog CLI",
		Long:          "Command-line interface for the Query Dog ClickHouse monitoring API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Apply precedence: flag > env > default
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("QUERYDOG_HOST"); v != "" {
					host = v
				}
			}
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("QUERYDOG_OUTPUT"); v != "" {
					output = v
				}
			}
			return validateOutputFormat(output)
		},
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "Query Dog server URL")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP request timeout")

	api := func() *client.Client {
		return client.New(host, client.WithTimeout(timeout))
	}

	rootCmd.AddCommand(newQueryLogCmd(api))
	rootCmd.AddCommand(newProcessesCmd(api))
	rootCmd.AddCommand(newMergesCmd(api))
	rootCmd.AddCommand(newMutationsCmd(api))
	rootCmd.AddCommand(newMetricsCmd(api))
	rootCmd.AddCommand(newExplainCmd(api))
	rootCmd.AddCommand(newQueryCmd(api))
	rootCmd.AddCommand(newHealthCmd(api))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}
