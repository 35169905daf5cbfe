package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var quitCmd = &cobra.Command{
	Use:     "quit",
	Aliases: []string{"exit"},
	Args:    cobra.NoArgs,
	Short:   "Close the open index and leave",
	RunE: func(cmd *cobra.Command, args []string) error {
		quitting = true
		fmt.Fprintln(cmd.OutOrStdout(), "Exiting program.")
		return closeIndex()
	},
}

func init() {
	rootCmd.AddCommand(quitCmd)
}
