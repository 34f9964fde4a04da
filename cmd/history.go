package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd is the command to list previous runs
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previous runs",
	Long: `Display the most recent replacement runs, newest first.
Examples:
  postman-rewrite history
  postman-rewrite history -n 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := Container.ReplacementService.History(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No runs recorded")
			return nil
		}
		for i, record := range records {
			fmt.Fprintf(out, "%d. %s [%s] %s\n", i+1, record.CreatedAt.Format("2006-01-02 15:04:05"), record.Status, record.ID)
			fmt.Fprintf(out, "   Collection: %s (%d requests)\n", record.Collection, record.Requests)
			fmt.Fprintf(out, "   %s -> %s\n", record.InputPath, record.OutputPath)
			if len(record.RulesFiles) > 0 {
				fmt.Fprintf(out, "   Rules: %s\n", strings.Join(record.RulesFiles, ", "))
			}
			if len(record.Passes) > 0 {
				fmt.Fprintf(out, "   Replacements: %s\n", strings.Join(record.Passes, ", "))
			}
			if record.Error != "" {
				fmt.Fprintf(out, "   Error: %s\n", record.Error)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
}
