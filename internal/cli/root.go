package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gamsync",
		Short: "gamsync - sync the GAM user report into a database table",
		Long: `gamsync runs "gam report users", maps the report columns to table columns
and upserts every row into the configured table with a single MERGE statement.
It is meant to be run from cron.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewSyncCmd(), NewSQLCmd())

	return rootCmd
}
