package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/assistant/internal/book"
	"github.com/roach88/assistant/internal/command"
)

// User-facing texts owned by the loop.
const (
	Welcome = "Welcome to the assistant bot!"
	Prompt  = "Enter a command: "
	Goodbye = "Good bye!"

	// LineTooLong answers an input line over the Console limit.
	LineTooLong = "Input is too long."
)

// Persister loads the book at start and saves it at exit.
type Persister interface {
	Load(ctx context.Context) (*book.AddressBook, error)
	Save(ctx context.Context, ab *book.AddressBook) error
}

// Session wires an Observer, a Persister and a Dispatcher.
type Session struct {
	observer   Observer
	store      Persister
	dispatcher *command.Dispatcher
	logger     *slog.Logger
}

// New creates a session. A nil logger uses slog.Default().
func New(observer Observer, store Persister, dispatcher *command.Dispatcher, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		observer:   observer,
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// IsExit reports whether word ends the session.
func IsExit(word string) bool {
	return word == "close" || word == "exit"
}

// Run loads the book, serves commands until exit, EOF or ctx cancellation,
// and saves the book.
//
// Handler failures are shown to the user and never end the loop. The book is
// saved even when reading input fails; load, save and input errors are
// returned.
func (s *Session) Run(ctx context.Context) error {
	ab, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load address book: %w", err)
	}
	s.logger.Debug("address book loaded", "contacts", ab.Len())

	s.observer.Display(Welcome)

	loopErr := s.loop(ctx, ab)

	// Save even if ctx was cancelled or input failed mid-session.
	if err := s.store.Save(context.WithoutCancel(ctx), ab); err != nil {
		return errors.Join(loopErr, fmt.Errorf("save address book: %w", err))
	}
	s.logger.Debug("address book saved", "contacts", ab.Len())
	return loopErr
}

func (s *Session) loop(ctx context.Context, ab *book.AddressBook) error {
	for {
		if ctx.Err() != nil {
			s.logger.Info("session cancelled")
			s.observer.Display(Goodbye)
			return nil
		}

		line, err := s.observer.Input(ctx, Prompt)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			s.observer.Display(Goodbye)
			return nil
		case ctx.Err() != nil:
			// Cancelled while waiting; the prompt line is still open.
			s.observer.Display("")
			continue
		case errors.Is(err, ErrLineTooLong):
			s.logger.Debug("input line too long")
			s.observer.Display(LineTooLong)
			continue
		default:
			return fmt.Errorf("read input: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		word, args := fields[0], fields[1:]

		if IsExit(word) {
			s.observer.Display(Goodbye)
			return nil
		}

		res := s.dispatcher.Dispatch(ab, word, args)
		if _, known := s.dispatcher.Lookup(word); !known {
			s.logger.Debug("unknown command", "command", word)
		} else if res.Failed() {
			s.logger.Debug("command failed", "command", word, "code", res.Code())
		}
		s.observer.Display(res.String())
	}
}
