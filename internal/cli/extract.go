package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Args:  cobra.ExactArgs(1),
	Short: "Write every pair to a text file in key order",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireIndex(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		path := args[0]

		empty, err := idx.IsEmpty()
		if err != nil {
			return err
		}
		if empty {
			fmt.Fprintln(out, "Index is empty.")
			return nil
		}

		if samePath(path, idx.Path()) {
			fmt.Fprintln(out, "Cannot extract over the open index file.")
			return nil
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && fileExists(path) {
			if !confirm(cmd, "File exists. Overwrite? (yes/no): ") {
				fmt.Fprintln(out, "Quitting")
				return nil
			}
		}

		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := idx.Extract(f)
		if err != nil {
			return err
		}

		if err := f.Close(); err != nil {
			return err
		}

		fmt.Fprintf(out, "Extracted %d key/value pairs to '%s'.\n", n, path)
		return nil
	},
}

// samePath reports whether a and b name the same file, falling back to
// comparing absolute paths when either does not exist yet
func samePath(a, b string) bool {
	if infoA, err := os.Stat(a); err == nil {
		if infoB, err := os.Stat(b); err == nil {
			return os.SameFile(infoA, infoB)
		}
	}

	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func init() {
	extractCmd.Flags().BoolP("force", "f", false, "overwrite an existing file without asking")
	rootCmd.AddCommand(extractCmd)
}
