package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.btindex/internal/config"
	"go.btindex/internal/engine"
	"go.btindex/internal/logger"
)

var (
	homeDir    string
	configPath string
	indexPath  string
)

var (
	cfg     *config.Config
	log     *logger.Logger
	logFile *os.File

	// The one index a session works on
	idx *engine.Index

	// Shared by the REPL and confirmation prompts so neither loses buffered input
	input *bufio.Scanner

	inREPL   bool
	quitting bool
)

var errNoIndex = errors.New("No file is currently open.")

var rootCmd = &cobra.Command{
	Use:               "btindex [index]",
	Short:             "btindex - disk-backed B-tree index of unsigned integer pairs",
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inREPL {
			return fmt.Errorf("Invalid command.")
		}

		if len(args) == 1 {
			if err := openIndex(cmd, args[0]); err != nil {
				return err
			}
		}

		startREPL(cmd)
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	shutdown()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	if errors.Is(err, errNoIndex) {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

// setup loads the config and log file once per process. --index is
// honoured on every command, so inside the REPL it switches the open index.
func setup(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		if err := loadSettings(); err != nil {
			return err
		}
	}

	// --index opens a store for one-shot commands such as `btindex search 7 -i a.idx`
	if indexPath != "" {
		return openIndex(cmd, indexPath)
	}
	return nil
}

func loadSettings() error {
	c, err := config.LoadConfig(homeDir, configPath)
	if err != nil {
		return fmt.Errorf("Failed to load config: %w", err)
	}

	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(c.LogFile(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	cfg = c
	logFile = f
	log = logger.New(logFile, level)
	return nil
}

func shutdown() {
	if err := closeIndex(); err != nil {
		printError(os.Stderr, err)
	}

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func options() engine.Options {
	return engine.Options{
		Log:         log,
		SyncOnClose: cfg.SyncOnClose,
	}
}

// openIndex swaps the session's index for the one at name
func openIndex(cmd *cobra.Command, name string) error {
	path := cfg.IndexPath(name)

	opened, err := engine.Open(path, options())
	if err != nil {
		return err
	}

	if err := closeIndex(); err != nil {
		opened.Close()
		return err
	}

	idx = opened
	log.Infof("session opened %s", path)
	return nil
}

func closeIndex() error {
	if idx == nil {
		return nil
	}

	err := idx.Close()
	idx = nil
	return err
}

func requireIndex() error {
	if idx == nil {
		return errNoIndex
	}
	return nil
}

func lineReader(cmd *cobra.Command) *bufio.Scanner {
	if input == nil {
		input = bufio.NewScanner(cmd.InOrStdin())
	}
	return input
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	sc := lineReader(cmd)
	if !sc.Scan() {
		return false
	}
	return strings.ToLower(strings.TrimSpace(sc.Text())) == "yes"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "btindex home directory (default $BTINDEX_HOME or ~/.local/share/btindex)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&indexPath, "index", "i", "", "index file to open before running a command")
}
