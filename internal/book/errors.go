package book

import "errors"

// ErrorKind categorizes recoverable user-facing errors.
type ErrorKind string

const (
	// KindInvalidPhoneFormat indicates a phone that is not exactly 10 ASCII digits.
	KindInvalidPhoneFormat ErrorKind = "INVALID_PHONE_FORMAT"

	// KindInvalidDateFormat indicates a birthday that does not parse as DD.MM.YYYY.
	KindInvalidDateFormat ErrorKind = "INVALID_DATE_FORMAT"

	// KindContactNotFound indicates a lookup by name found no record.
	KindContactNotFound ErrorKind = "CONTACT_NOT_FOUND"
)

// Error is a recoverable error whose Message is safe to show to the user.
type Error struct {
	// Kind identifies the error category.
	Kind ErrorKind

	// Message is the user-facing text.
	Message string

	// Input is the raw value that was rejected, if any.
	Input string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "book: <nil>"
	}
	return e.Message
}

// Code returns the error kind as a string.
func (e *Error) Code() string {
	return string(e.Kind)
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// ErrContactNotFound is returned when a name lookup yields nothing.
var ErrContactNotFound = &Error{Kind: KindContactNotFound, Message: "Contact not found."}

func invalidPhone(raw string) *Error {
	return &Error{
		Kind:    KindInvalidPhoneFormat,
		Message: "write please 10-digit number.",
		Input:   raw,
	}
}

func invalidDate(raw string) *Error {
	return &Error{
		Kind:    KindInvalidDateFormat,
		Message: "Invalid date format. Use please DD.MM.YYYY",
		Input:   raw,
	}
}
