package command

import (
	"errors"
	"fmt"

	"github.com/roach88/assistant/internal/book"
)

// Error kinds added on top of the book taxonomy.
const (
	// KindIncompleteCommand indicates fewer argument tokens than required.
	KindIncompleteCommand book.ErrorKind = "INCOMPLETE_COMMAND"

	// KindBirthdayNotFound indicates the contact is missing or has no birthday.
	KindBirthdayNotFound book.ErrorKind = "BIRTHDAY_NOT_FOUND"
)

var (
	// ErrIncompleteCommand is returned when required arguments are missing.
	ErrIncompleteCommand = &book.Error{
		Kind:    KindIncompleteCommand,
		Message: "Incomplete command. Input all necessary arguments.",
	}

	// ErrBirthdayNotFound is returned by show-birthday.
	ErrBirthdayNotFound = &book.Error{
		Kind:    KindBirthdayNotFound,
		Message: "Birthday not found.",
	}
)

// Result is the outcome of one handler call.
// Exactly one of Message or Err is meaningful: Err takes precedence.
type Result struct {
	Message string
	Err     error
}

// OK returns a successful result.
func OK(message string) Result {
	return Result{Message: message}
}

// Fail returns a failed result.
func Fail(err error) Result {
	return Result{Err: err}
}

// Failed reports whether the result carries an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Code returns the error kind for failed results, or "" on success.
// Errors outside the book taxonomy report "UNEXPECTED".
func (r Result) Code() string {
	if r.Err == nil {
		return ""
	}
	var be *book.Error
	if errors.As(r.Err, &be) {
		return be.Code()
	}
	return "UNEXPECTED"
}

// String renders the result as the text shown to the user.
func (r Result) String() string {
	if r.Err == nil {
		return r.Message
	}
	var be *book.Error
	if errors.As(r.Err, &be) {
		return be.Message
	}
	return fmt.Sprintf("Unexpected error: %v", r.Err)
}

// need returns ErrIncompleteCommand if args has fewer than n tokens.
func need(args []string, n int) error {
	if len(args) < n {
		return ErrIncompleteCommand
	}
	return nil
}
