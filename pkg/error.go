package pkg

import (
	"errors"
	"log/slog"
)

// Error is an error value that carries structured attributes for logging.
//
// Packages declare sentinels with [NewError] and return decorated copies
// made with [Error.Wrap] and [Error.With]. Every copy still satisfies
// errors.Is against its sentinel.
type Error struct {
	msg   string
	cause error
	attrs []slog.Attr
}

// NewError returns a sentinel with the given message.
func NewError(msg string) *Error { return &Error{msg: msg} }

// WrapError returns err as an *Error. An error that already is, or wraps,
// an *Error yields that *Error; any other error becomes its cause.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{cause: err}
}

// Error returns "msg: cause", or whichever of the two is set.
func (e *Error) Error() string {
	switch {
	case e.cause == nil:
		return e.msg
	case e.msg == "":
		return e.cause.Error()
	default:
		return e.msg + ": " + e.cause.Error()
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error derived from the same sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// Attrs returns the attributes attached with [Error.With].
func (e *Error) Attrs() []slog.Attr { return e.attrs }

// LogValue implements slog.LogValuer. The message and cause are logged as
// "error" and "cause" followed by the attached attributes.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 2+len(e.attrs))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.cause = err

	return &c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = append(e.attrs[:len(e.attrs):len(e.attrs)], attrs...)

	return &c
}
