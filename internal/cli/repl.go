package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const menu = "Commands: create, open, insert, search, load, print, extract, info, digest, quit"

// Starts an interactive command session
// Forwards commands to cobra
func startREPL(root *cobra.Command) {
	inREPL = true
	defer func() { inREPL = false }()

	reader := lineReader(root)
	out := root.OutOrStdout()

	fmt.Fprintln(out, menu)

	for !quitting {
		fmt.Fprint(out, cfg.Prompt)

		if !reader.Scan() {
			fmt.Fprintln(out)
			return
		}

		// Get the command typed by the user
		input := strings.TrimSpace(reader.Text())

		// Check for blank input
		if input == "" {
			continue
		}

		args := strings.Fields(input)
		args[0] = strings.ToLower(args[0])

		if c, _, err := root.Find(args); err != nil || c == root {
			fmt.Fprintln(out, "Invalid command.")
			continue
		}

		// Flags keep their values between Execute calls
		resetFlags(root)

		// Pass the command back to root
		root.SetArgs(args)

		if err := root.ExecuteContext(context.Background()); err != nil {
			printError(out, err)
		}
	}
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
