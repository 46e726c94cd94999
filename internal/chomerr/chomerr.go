// Package chomerr holds errors that carry a message meant for the person at
// the prompt in addition to the usual technical description.
package chomerr

import "fmt"

// commandError is an error caused by attempting to interpret a line of input
// at the prompt. Either the line could not be understood or it asks for
// something that cannot be done with the current grammar.
//
// It includes a human-readable message to show to the operator as well as a
// typical more technical "error message" style message.
type commandError struct {
	msg   string
	human string
	wrap  error
}

func (e *commandError) Error() string {
	return e.msg
}

// ConsoleMessage shows the message that should be displayed at the prompt to
// describe the error.
func (e *commandError) ConsoleMessage() string {
	return e.human
}

// Unwrap gives the error that the commandError wraps, if it wraps one.
func (e *commandError) Unwrap() error {
	return e.wrap
}

// Command returns a new error that has both the message to show the operator
// and the technical description of the error.
func Command(console, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("command error: %s", console)
	}
	return &commandError{
		msg:   technical,
		human: console,
	}
}

// Commandf returns a new error that has a message to show to the operator and
// an automatically generated Error() description.
func Commandf(consoleFormat string, a ...interface{}) error {
	return Command(fmt.Sprintf(consoleFormat, a...), "")
}

// WrapCommand returns a new error that has both the message to show the
// operator and the technical description of the error, and that wraps the
// given error.
func WrapCommand(e error, console, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("command error: %s: %v", console, e)
	}
	return &commandError{
		msg:   technical,
		human: console,
		wrap:  e,
	}
}

// WrapCommandf is WrapCommand with a generated technical description and a
// formatted console message.
func WrapCommandf(e error, consoleFormat string, a ...interface{}) error {
	return WrapCommand(e, fmt.Sprintf(consoleFormat, a...), "")
}

// ConsoleMessage gets the message to display to the console for the given
// error. If it was created by this package, the console message is returned.
// Otherwise, err.Error() is returned.
func ConsoleMessage(err error) string {
	if cmdErr, ok := err.(*commandError); ok {
		return cmdErr.ConsoleMessage()
	}
	return err.Error()
}
