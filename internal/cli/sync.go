package cli

import (
	"github.com/spf13/cobra"
)

type SyncOptions struct {
	ConfigFile  string
	DryRun      bool
	SkipExtract bool
	LogFile     string
	Debug       bool
}

func addCommonFlags(cmd *cobra.Command, opts *SyncOptions) {
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "googleSync.yaml", "Path to the YAML config file")
	cmd.Flags().BoolVar(&opts.SkipExtract, "skip-extract", opts.SkipExtract, "Reuse the last report instead of running gam")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Also append log output to this file")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
}

func NewSyncCmd() *cobra.Command {
	opts := &SyncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull the GAM report and upsert it into the database",
		RunE: func(c *cobra.Command, args []string) error {
			return runSync(c.Context(), opts)
		},
	}

	addCommonFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Build the statement and rows but do not touch the database")
	return cmd
}

func NewSQLCmd() *cobra.Command {
	opts := &SyncOptions{SkipExtract: true}

	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Print the MERGE statement generated for the current report",
		RunE: func(c *cobra.Command, args []string) error {
			return runPrintSQL(c.Context(), c.OutOrStdout(), opts)
		},
	}

	addCommonFlags(cmd, opts)
	return cmd
}
