package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.btindex/internal/storage"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Args:  cobra.NoArgs,
	Short: "Print the tree, children before and after their separating keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireIndex(); err != nil {
			return err
		}

		err := idx.Print(cmd.OutOrStdout())
		if errors.Is(err, storage.ErrEmptyTree) {
			fmt.Fprintln(cmd.OutOrStdout(), "Index is empty.")
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
}
