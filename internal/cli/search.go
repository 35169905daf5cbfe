package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.btindex/internal/engine"
	"go.btindex/internal/storage"
)

var searchCmd = &cobra.Command{
	Use:   "search <key>",
	Args:  cobra.ExactArgs(1),
	Short: "Look up the value stored for a key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireIndex(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		key, err := engine.ParseUint(args[0])
		if err != nil {
			fmt.Fprintln(out, "Invalid input.")
			return nil
		}

		val, err := idx.Search(key)
		switch {
		case errors.Is(err, storage.ErrEmptyTree):
			fmt.Fprintln(out, "Index is empty.")
			return nil
		case errors.Is(err, storage.ErrNotFound):
			fmt.Fprintf(out, "Key %d not found.\n", key)
			return nil
		case err != nil:
			return err
		}

		fmt.Fprintf(out, "Search result: key=%d, value=%d.\n", key, val)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
