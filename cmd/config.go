package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCmd is the command to manage configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Manage Postman Rewrite configuration.`,
}

// configShowCmd is the command to display configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration",
	Long:  `Display Postman Rewrite configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Postman Rewrite Configuration:")
		fmt.Fprintf(out, "Log Level: %s\n", Container.Config.LogLevel)
		fmt.Fprintf(out, "Log File: %s\n", Container.Config.LogFile)
		fmt.Fprintf(out, "History DB: %s\n", Container.Config.HistoryDB)
		fmt.Fprintf(out, "Pretty: %t\n", Container.Config.Pretty)

		if len(Container.Config.RulesFiles) > 0 {
			fmt.Fprintln(out, "\nRules Files:")
			for i, path := range Container.Config.RulesFiles {
				fmt.Fprintf(out, "  %d. %s\n", i+1, path)
			}
		}
	},
}

// configSetCmd is the command to set configuration
var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set configuration",
	Long: `Set Postman Rewrite configuration.
Examples:
  postman-rewrite config set log_level debug
  postman-rewrite config set log_file /var/log/postman-rewrite.log
  postman-rewrite config set history_db ""
  postman-rewrite config set pretty true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := Container.ConfigService.Set(Container.Config, key, value); err != nil {
			return err
		}
		if err := Container.ConfigService.SaveConfig(Container.Config, ConfigPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration %s successfully changed to %s\n", key, value)
		return nil
	},
}

// configAddRulesCmd is the command to add a default rules file
var configAddRulesCmd = &cobra.Command{
	Use:   "add-rules [path]",
	Short: "Add a default rules file",
	Long: `Add a rules file used when replace is run without --rules.
Examples:
  postman-rewrite config add-rules ~/rules/base.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Container.ConfigService.AddRulesFile(Container.Config, args[0])
		if err := Container.ConfigService.SaveConfig(Container.Config, ConfigPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rules file %s successfully added to configuration\n", args[0])
		return nil
	},
}

// configRemoveRulesCmd is the command to remove a default rules file
var configRemoveRulesCmd = &cobra.Command{
	Use:   "remove-rules [path]",
	Short: "Remove a default rules file",
	Long: `Remove a rules file from the defaults.
Examples:
  postman-rewrite config remove-rules ~/rules/base.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !Container.ConfigService.RemoveRulesFile(Container.Config, args[0]) {
			return fmt.Errorf("rules file %s not found in configuration", args[0])
		}
		if err := Container.ConfigService.SaveConfig(Container.Config, ConfigPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rules file %s successfully removed from configuration\n", args[0])
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configAddRulesCmd)
	configCmd.AddCommand(configRemoveRulesCmd)
}
