package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/assistant/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	As     string
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the address book as YAML or JSON",
		Long: `Write the whole address book as YAML or JSON.

Example:
  assistant export
  assistant export --as json -o contacts.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "encoding (yaml|json); default from --output extension, else yaml")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	env, err := loadEnvironment(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	as := opts.As
	if as == "" {
		as = store.FormatForPath(opts.Output)
	}
	if as != store.FormatYAML && as != store.FormatJSON {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid encoding %q: must be yaml or json", as))
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

	ab, err := st.Load(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load address book", err)
	}

	encode := func(w io.Writer) error {
		return store.Encode(w, store.SnapshotOf(ab), as)
	}
	if opts.Output == "" {
		err = encode(cmd.OutOrStdout())
	} else {
		err = writeFile(opts.Output, encode)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to export", err)
	}
	env.logger.Info("address book exported", "contacts", ab.Len(), "encoding", as)
	return nil
}

// writeFile writes path through a temp file in the same directory and
// renames it into place. On failure the temp file is removed and any
// existing file at path is left untouched.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
