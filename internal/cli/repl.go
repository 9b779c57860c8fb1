package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/assistant/internal/book"
	"github.com/roach88/assistant/internal/command"
	"github.com/roach88/assistant/internal/session"
)

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive prompt (default)",
		Long: "Start the interactive assistant prompt.\n\n" +
			"Commands:\n" + commandHelp() + "  close | exit\n\n" +
			"The address book is saved on close, exit, end of input or interrupt.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(rootOpts, cmd)
		},
	}
}

func runRepl(opts *RootOptions, cmd *cobra.Command) error {
	env, err := loadEnvironment(opts, cmd)
	if err != nil {
		return err
	}

	st, err := env.openStore()
	if err != nil {
		return err
	}
	defer env.closeStore(st)

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := session.New(
		session.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout()),
		st,
		command.NewDispatcher(env.clock, env.cfg.Window),
		env.logger,
	)
	if err := sess.Run(ctx); err != nil {
		return WrapExitError(ExitCommandError, "session failed", err)
	}
	return nil
}

// commandHelp lists the assistant commands with their arguments, one per line.
func commandHelp() string {
	var b strings.Builder
	for _, c := range command.NewDispatcher(nil, book.DefaultWindow).Commands() {
		b.WriteString("  " + c.Name)
		if c.Usage != "" {
			b.WriteString(" " + c.Usage)
		}
		b.WriteString("\n")
	}
	return b.String()
}
