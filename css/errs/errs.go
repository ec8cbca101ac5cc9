// Package errs defines the error kinds reported by the value engine,
// modeled after the DOM exceptions of the CSS object model.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an [Error].
type Kind uint8

const (
	_ Kind = iota
	// Syntax is used when a token stream can't form a valid value.
	Syntax
	// TypeMismatch is used for values which are parseable but
	// semantically wrong for their context.
	TypeMismatch
	// InvalidModification is used when a re-parse would change
	// the fundamental kind of a value.
	InvalidModification
	// NotSupported is used for operations a value can't support.
	NotSupported
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "SyntaxError"
	case TypeMismatch:
		return "TypeMismatchError"
	case InvalidModification:
		return "InvalidModificationError"
	case NotSupported:
		return "NotSupportedError"
	default:
		return fmt.Sprintf("<invalid kind %d>", k)
	}
}

// Error is the concrete error type returned by this module.
type Error struct {
	Message string
	Kind    Kind
}

func (e *Error) Error() string { return e.Kind.String() + ": " + e.Message }

// Is matches errors of the same kind, so that
// errors.Is(err, ErrSyntax) works for every syntax error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinel errors, to be used with errors.Is
var (
	ErrSyntax              = &Error{Kind: Syntax}
	ErrTypeMismatch        = &Error{Kind: TypeMismatch}
	ErrInvalidModification = &Error{Kind: InvalidModification}
	ErrNotSupported        = &Error{Kind: NotSupported}
)

func Syntaxf(format string, args ...interface{}) error {
	return &Error{Kind: Syntax, Message: fmt.Sprintf(format, args...)}
}

func TypeMismatchf(format string, args ...interface{}) error {
	return &Error{Kind: TypeMismatch, Message: fmt.Sprintf(format, args...)}
}

func InvalidModificationf(format string, args ...interface{}) error {
	return &Error{Kind: InvalidModification, Message: fmt.Sprintf(format, args...)}
}

func NotSupportedf(format string, args ...interface{}) error {
	return &Error{Kind: NotSupported, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first [Error] found in err's chain,
// or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
