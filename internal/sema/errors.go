package sema

import (
	"errors"
	"fmt"

	"redux/internal/diag"
	"redux/internal/source"
)

// Error kinds. Every annotation failure wraps exactly one of them.
var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrUndefinedType     = errors.New("undefined type")
	ErrIncompatibleType  = errors.New("incompatible type")
	ErrNotCallable       = errors.New("not callable")
	ErrInvalidExpression = errors.New("invalid expression")
	ErrImmutability      = errors.New("immutability violation")
	ErrLookupFailure     = errors.New("lookup failure")
)

// Error is a fatal semantic error for the current compilation unit.
type Error struct {
	Kind error
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Code maps the error kind onto its diagnostic code.
func (e *Error) Code() diag.Code {
	switch e.Kind {
	case ErrUndefinedVariable:
		return diag.SemaUndefinedVariable
	case ErrUndefinedType:
		return diag.SemaUndefinedType
	case ErrIncompatibleType:
		return diag.SemaIncompatibleType
	case ErrNotCallable:
		return diag.SemaNotCallable
	case ErrInvalidExpression:
		return diag.SemaInvalidExpression
	case ErrImmutability:
		return diag.SemaImmutability
	case ErrLookupFailure:
		return diag.SemaLookupFailure
	default:
		return diag.SemaInternal
	}
}

// Diagnostic converts the error into a diagnostic for the bag.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code(), e.Span, e.Error())
}

func errorf(kind error, sp source.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: sp, Msg: fmt.Sprintf(format, args...)}
}
