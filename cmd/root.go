package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haxorport/postman-rewrite/internal/di"
)

var (
	// Container is the dependency injection container
	Container *di.Container

	// ConfigPath is the path to the configuration file
	ConfigPath string

	// LogLevel is the logging level
	LogLevel string

	// RootCmd is the root command for CLI
	RootCmd = &cobra.Command{
		Use:   "postman-rewrite",
		Short: "Postman Rewrite - rewrite headers, hosts and paths of Postman collections",
		Long: `Postman Rewrite applies replacement rules to every request of a Postman collection.
It replaces header values, rewrites hosts, strips path prefixes and turns
concrete path segments into path variables, in nested folders of any depth.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize container
			Container = di.NewContainer()
			if err := Container.Initialize(ConfigPath); err != nil {
				return err
			}

			// Set log level after container initialization
			if LogLevel != "" {
				Container.Logger.SetLevel(LogLevel)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// Close container
			if Container != nil {
				Container.Close()
			}
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Add global flags
	RootCmd.PersistentFlags().StringVarP(&ConfigPath, "config", "c", "", "Path to configuration file (default: ~/.postman-rewrite/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Set logging level (debug, info, warn, error)")
}
