package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.btindex/internal/storage"
)

var openCmd = &cobra.Command{
	Use:   "open <file>",
	Args:  cobra.ExactArgs(1),
	Short: "Open an existing index file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		err := openIndex(cmd, args[0])
		switch {
		case errors.Is(err, os.ErrNotExist):
			fmt.Fprintln(out, "File does not exist.")
			return nil
		case errors.Is(err, storage.ErrInvalidFormat):
			fmt.Fprintln(out, "Invalid file format.")
			return nil
		case err != nil:
			return err
		}

		fmt.Fprintf(out, "File '%s' opened.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
