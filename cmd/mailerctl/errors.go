package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var errorsLimit int32

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "List recently recorded send failures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		q, err := queries(ctx)
		if err != nil {
			return err
		}

		logs, err := q.ListRecentErrorLogs(ctx, errorsLimit)
		if err != nil {
			return fmt.Errorf("list error logs: %w", err)
		}

		if len(logs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No errors recorded.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tTITLE\tMESSAGE")
		for _, l := range logs {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				l.CreatedAt.Format("2006-01-02 15:04:05"), l.Title, oneLine(l.Message))
		}
		return w.Flush()
	},
}

func init() {
	errorsCmd.Flags().Int32VarP(&errorsLimit, "limit", "n", 20, "Number of entries to show")
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 120 {
		return s[:117] + "..."
	}
	return s
}
