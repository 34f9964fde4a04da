package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haxorport/postman-rewrite/internal/application/service"
)

var (
	// Replace command flags
	replaceRulesFiles []string
	replaceOutput     string
	replaceDryRun     bool
	replacePretty     bool
)

// replaceCmd is the command to apply replacement rules to a collection
var replaceCmd = &cobra.Command{
	Use:   "replace [collection]",
	Short: "Apply replacement rules to a collection",
	Long: `Apply replacement rules to every request of a Postman collection.
Rule files are JSON or YAML with the optional keys headers, host, pathPrefix
and pathReplacements. Several rule files are layered in the given order.
Examples:
  postman-rewrite replace api.postman_collection.json -r replacements.json
  postman-rewrite replace api.json -r base.yaml -r staging.yaml -o api-staging.json
  postman-rewrite replace api.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := Container.ReplacementService.Run(cmd.Context(), service.RunOptions{
			CollectionPath: args[0],
			OutputPath:     replaceOutput,
			RulesFiles:     replaceRulesFiles,
			DryRun:         replaceDryRun,
			Pretty:         replacePretty,
		})
		if err != nil {
			return err
		}

		passes := "none"
		if len(record.Passes) > 0 {
			passes = strings.Join(record.Passes, ", ")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Collection: %s (%d requests)\n", record.Collection, record.Requests)
		fmt.Fprintf(out, "Replacements: %s\n", passes)
		if replaceDryRun {
			fmt.Fprintln(out, "Dry run, nothing written")
		} else {
			fmt.Fprintf(out, "Written to: %s\n", record.OutputPath)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(replaceCmd)

	replaceCmd.Flags().StringArrayVarP(&replaceRulesFiles, "rules", "r", nil, "Replacement rules file, may be repeated (default: rules_files from configuration)")
	replaceCmd.Flags().StringVarP(&replaceOutput, "output", "o", "", "Output file (default: rewrite the collection in place)")
	replaceCmd.Flags().BoolVar(&replaceDryRun, "dry-run", false, "Apply the rules without writing the result")
	replaceCmd.Flags().BoolVar(&replacePretty, "pretty", false, "Indent the written collection")
}
