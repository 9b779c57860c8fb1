// Package command implements the assistant's user-facing commands.
//
// Every handler takes the argument tokens that follow the command word and
// the address book, and returns a Result: either a success message or a
// typed error. Handlers never panic and never return raw errors to the
// caller; rendering a Result always yields a short user-facing line.
//
// The Dispatcher maps command words to handlers. Session control words
// (exit, close) are not commands and are handled by the interaction loop.
package command
