// Command wikiparser extracts, filters, and simplifies Wikipedia article
// content from Wikimedia Enterprise HTML dumps, keeping only articles
// referenced by OpenStreetMap data.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wikiparser/pkg/logging"
	"wikiparser/pkg/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "wikiparser",
		Short:         "wikiparser - extract OSM-referenced articles from Wikipedia Enterprise dumps",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.Init(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(newGetArticlesCmd())
	root.AddCommand(newSimplifyCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)
		},
	}
}
