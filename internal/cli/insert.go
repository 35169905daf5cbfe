package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.btindex/internal/engine"
	"go.btindex/internal/storage"
)

var insertCmd = &cobra.Command{
	Use:   "insert <key> <value>",
	Args:  cobra.ExactArgs(2),
	Short: "Insert a key/value pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireIndex(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		key, kErr := engine.ParseUint(args[0])
		val, vErr := engine.ParseUint(args[1])
		if kErr != nil || vErr != nil {
			fmt.Fprintln(out, "Invalid input.")
			return nil
		}

		err := idx.Insert(key, val)
		switch {
		case errors.Is(err, storage.ErrKeyExists):
			fmt.Fprintf(out, "Key %d already exists.\n", key)
			return nil
		case errors.Is(err, storage.ErrStructuralLimit):
			fmt.Fprintf(out, "Key %d was not inserted: the split would cascade past the grandparent.\n", key)
			return nil
		case err != nil:
			return err
		}

		fmt.Fprintf(out, "Inserted key=%d, value=%d.\n", key, val)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
