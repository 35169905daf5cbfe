package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Args:  cobra.ExactArgs(1),
	Short: "Insert every key,value line of a text file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireIndex(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		f, err := os.Open(args[0])
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(out, "File does not exist.")
			return nil
		}
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := idx.Load(f)
		if res != nil {
			for _, lineErr := range res.Errors {
				fmt.Fprintf(out, "Skipped %v\n", lineErr)
			}
			fmt.Fprintf(out, "Loaded %d of %d pairs from '%s'.\n", res.Inserted, res.Processed, args[0])
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
