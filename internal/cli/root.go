package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/assistant/internal/book"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	LogFormat string // "json" | "text"
	Config    string
	EnvFile   string
	Database  string
	Window    int

	// Clock allows overriding "today" (for testing).
	// If nil, defaults to book.SystemClock.
	Clock book.Clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the assistant CLI.
// Without a subcommand it starts the interactive loop.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

// newRootCommand builds the command tree around opts.
// Tests use it to inject a Clock.
func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assistant",
		Short: "Assistant bot - contacts and birthdays",
		Long: `A local assistant bot that keeps contacts, phone numbers and birthdays.

Run without a subcommand to start the interactive prompt. The address book
is loaded from a SQLite file at start and saved on exit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "path to .env file (default .env)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default addressbook.db)")
	cmd.PersistentFlags().IntVar(&opts.Window, "window", book.DefaultWindow, "upcoming-birthday look-ahead in days")

	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
