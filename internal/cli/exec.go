package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/assistant/internal/command"
)

// execResult is the payload printed by exec.
type execResult struct {
	Command string `json:"command"`
	Message string `json:"message"`
}

func (r execResult) String() string { return r.Message }

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <command> [args...]",
		Short: "Run one assistant command and exit",
		Long: `Run a single assistant command against the stored address book.

The book is saved afterwards if the command changes it.

Commands:
` + commandHelp() + `
Example:
  assistant exec add Alice 0501234567
  assistant exec add-birthday Alice 15.06.1990
  assistant exec --window 14 birthdays
  assistant --format json exec all`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(rootOpts, cmd, args[0], args[1:])
		},
	}

	// Everything after the command word belongs to the command.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runExec(opts *RootOptions, cmd *cobra.Command, word string, args []string) error {
	env, err := loadEnvironment(opts, cmd)
	if err != nil {
		return err
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	dispatcher := command.NewDispatcher(env.clock, env.cfg.Window)
	c, ok := dispatcher.Lookup(word)
	if !ok {
		_ = formatter.Error("INVALID_COMMAND", command.InvalidCommand, map[string]string{"command": word})
		return &ExitError{Code: ExitCommandError, Message: command.InvalidCommand, Reported: true}
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

	res := c.Run(args, ab)
	if res.Failed() {
		_ = formatter.Error(res.Code(), res.String(), nil)
		return &ExitError{Code: ExitFailure, Message: res.String(), Reported: true}
	}

	if c.Mutates {
		if err := st.Save(ctx, ab); err != nil {
			return WrapExitError(ExitCommandError, "failed to save address book", err)
		}
		env.logger.Debug("address book saved", "contacts", ab.Len())
	}

	return formatter.Success(execResult{Command: word, Message: res.String()})
}
