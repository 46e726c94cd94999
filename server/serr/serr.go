// Package serr has the errors passed between the grammar service and the API
// layer. Handlers pick an HTTP status by checking a returned error against the
// sentinels here with errors.Is, so an Error carries every sentinel that
// applies to it as a cause.
package serr

import "errors"

var (
	ErrBadCredentials = errors.New("the supplied username/password combination is incorrect")
	ErrPermissions    = errors.New("you don't have permission to do that")
	ErrNotFound       = errors.New("the requested entity could not be found")
	ErrAlreadyExists  = errors.New("resource with same identifying information already exists")
	ErrDB             = errors.New("an error occured with the DB")
	ErrBadArgument    = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal  = errors.New("malformed data in request")
	ErrNotNormalized  = errors.New("the grammar has not been normalized yet")
)

// Error is a message plus any number of causes. errors.Is on an Error matches
// each of its causes, so a grammar that fails validation can be reported as
// both the validation error and ErrBadArgument.
//
// The text of an Error is its message followed by the text of its first cause.
// Later causes are usually sentinels used only for classification and are
// left out.
type Error struct {
	msg   string
	cause []error
}

// New creates an Error with the given message and causes. Both are optional.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}

// WrapDB gives an Error for a failure in the DAO layer. err is kept as the
// first cause and ErrDB is added after it. msg may be empty.
func WrapDB(msg string, err error) Error {
	return wrap(msg, err, ErrDB)
}

// WrapBadArgument gives an Error for client input that could not be used,
// such as a grammar literal with undeclared symbols or an input string with
// unknown terminals. err, which says what is wrong, is kept as the first
// cause and ErrBadArgument is added after it.
func WrapBadArgument(msg string, err error) Error {
	return wrap(msg, err, ErrBadArgument)
}

func wrap(msg string, err error, kind error) Error {
	return Error{msg: msg, cause: []error{err, kind}}
}

func (e Error) Error() string {
	switch {
	case len(e.cause) == 0:
		return e.msg
	case e.msg == "":
		return e.cause[0].Error()
	default:
		return e.msg + ": " + e.cause[0].Error()
	}
}

// Unwrap gives the causes of e, or nil if it has none. errors.Is uses it on
// Go 1.20 and later; on 1.19 it falls back to Is.
func (e Error) Unwrap() []error {
	if len(e.cause) == 0 {
		return nil
	}
	return e.cause
}

// Is reports whether target is one of e's causes, or is an Error with the same
// message and causes as e.
func (e Error) Is(target error) bool {
	if other, ok := target.(Error); ok && e.sameAs(other) {
		return true
	}

	for i := range e.cause {
		if e.cause[i] == target {
			return true
		}
	}
	return false
}

func (e Error) sameAs(o Error) bool {
	if e.msg != o.msg || len(e.cause) != len(o.cause) {
		return false
	}
	for i := range e.cause {
		if e.cause[i] != o.cause[i] {
			return false
		}
	}
	return true
}
