package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Args:  cobra.NoArgs,
	Short: "Show header fields and tree shape of the open index",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireIndex(); err != nil {
			return err
		}

		stats, err := idx.Stats()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "file:       %s\n", idx.Path())
		fmt.Fprintf(out, "root block: %d\n", stats.RootID)
		fmt.Fprintf(out, "next block: %d\n", stats.NextBlockID)
		fmt.Fprintf(out, "height:     %d\n", stats.Height)
		fmt.Fprintf(out, "nodes:      %d (%d leaves)\n", stats.Nodes, stats.Leaves)
		fmt.Fprintf(out, "pairs:      %d\n", stats.Pairs)

		if verify, _ := cmd.Flags().GetBool("verify"); verify {
			if err := idx.Verify(); err != nil {
				fmt.Fprintf(out, "verify:     %v\n", err)
				return nil
			}
			fmt.Fprintln(out, "verify:     ok")
		}
		return nil
	},
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Args:  cobra.NoArgs,
	Short: "Print a BLAKE2b-256 digest of the stored pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireIndex(); err != nil {
			return err
		}

		sum, err := idx.Digest()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(sum))
		return nil
	},
}

func init() {
	infoCmd.Flags().Bool("verify", false, "also check ordering and parent links")
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(digestCmd)
}
