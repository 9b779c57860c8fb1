package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/assistant/internal/store"
)

// importResult is the payload printed by import.
type importResult struct {
	File     string `json:"file"`
	Contacts int    `json:"contacts"`
}

func (r importResult) String() string {
	return fmt.Sprintf("Imported %d contacts from %s.", r.Contacts, r.File)
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the address book with a YAML or JSON export",
		Long: `Replace the stored address book with the contents of an export file.

The encoding is chosen by extension: .json is JSON, anything else YAML.
Every phone and birthday is validated before anything is written.

Example:
  assistant import contacts.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, cmd, args[0])
		},
	}
}

func runImport(opts *RootOptions, cmd *cobra.Command, path string) error {
	env, err := loadEnvironment(opts, cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open import file", err)
	}
	defer f.Close()

	snap, err := store.Decode(f, store.FormatForPath(path))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read import file", err)
	}
	ab, err := snap.Book()
	if err != nil {
		return WrapExitError(ExitFailure, "invalid import file", err)
	}

	st, err := env.openStore()
	if err != nil {
		return err
	}
	defer env.closeStore(st)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := st.Save(ctx, ab); err != nil {
		return WrapExitError(ExitCommandError, "failed to save address book", err)
	}
	env.logger.Info("address book imported", "contacts", ab.Len(), "file", path)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(importResult{File: path, Contacts: ab.Len()})
}
