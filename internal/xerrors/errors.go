package xerrors

import (
	"errors"
)

// Kind classifies a conversion failure. Every fatal error in the pipeline
// carries one, so the command layer can report a precise reason without
// string matching.
type Kind string

const (
	// KindParse is a malformed input document (health archive or GPX).
	KindParse Kind = "parse"
	// KindNoMatch means no workout session overlaps the track's start time.
	KindNoMatch Kind = "no_match"
	// KindValidation is a structurally incomplete input, such as a track
	// with no points.
	KindValidation Kind = "validation"
)

type Error struct {
	Kind    Kind
	Message string
	// Source names the offending input file, when there is one.
	Source string
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = msg + " (" + e.Source + ")"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

func Parse(opts ...Option) *Error      { return newErr(KindParse, "malformed input", opts) }
func NoMatch(opts ...Option) *Error    { return newErr(KindNoMatch, "no matching workout session", opts) }
func Validation(opts ...Option) *Error { return newErr(KindValidation, "invalid input", opts) }

func newErr(kind Kind, defaultMsg string, opts []Option) *Error {
	e := &Error{Kind: kind, Message: defaultMsg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type Option func(*Error)

func WithMessage(msg string) Option   { return func(e *Error) { e.Message = msg } }
func WithCause(err error) Option      { return func(e *Error) { e.Cause = err } }
func WithSource(source string) Option { return func(e *Error) { e.Source = source } }

func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

func IsKind(err error, kind Kind) bool {
	if e := As(err); e != nil {
		return e.Kind == kind
	}
	return false
}
