package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.btindex/internal/engine"
	"go.btindex/internal/storage"
)

var createCmd = &cobra.Command{
	Use:   "create <file>",
	Args:  cobra.ExactArgs(1),
	Short: "Create a new index file and open it",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		path := cfg.IndexPath(name)
		out := cmd.OutOrStdout()

		force, _ := cmd.Flags().GetBool("force")

		opts := options()
		opts.Overwrite = force

		created, err := engine.Create(path, opts)
		if errors.Is(err, storage.ErrFileExists) {
			if !confirm(cmd, "File exists. Overwrite? (yes/no): ") {
				fmt.Fprintln(out, "Quitting")
				return nil
			}

			opts.Overwrite = true
			created, err = engine.Create(path, opts)
		}
		if err != nil {
			return err
		}

		if err := closeIndex(); err != nil {
			created.Close()
			return err
		}
		idx = created

		fmt.Fprintf(out, "File '%s' created and opened.\n", name)
		return nil
	},
}

func init() {
	createCmd.Flags().BoolP("force", "f", false, "overwrite an existing file without asking")
	rootCmd.AddCommand(createCmd)
}
