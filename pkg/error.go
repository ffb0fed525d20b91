package pkg

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Error is a structured error with optional logging attributes.
//
// Sentinel values are created once with [NewError]. Every value derived from
// a sentinel with [Error.Wrap] or [Error.With] keeps the identity of that
// sentinel, so errors.Is(derived, sentinel) reports true.
type Error struct {
	kind  *Error
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from, or any value
// derived from that same sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.kind != nil && t.kind == e.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		var lv slog.LogValuer
		if errors.As(e.err, &lv) {
			attrs = append(attrs, slog.Any("cause", lv))
		} else {
			attrs = append(attrs, slog.String("cause", e.err.Error()))
		}
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Attr returns the value of the last attribute named key attached to e or to
// any [Error] it wraps.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for i := len(e.attrs) - 1; i >= 0; i-- {
		if e.attrs[i].Key == key {
			return e.attrs[i].Value, true
		}
	}

	var inner *Error
	if e.err != nil && errors.As(e.err, &inner) {
		return inner.Attr(key)
	}

	return slog.Value{}, false
}

// Errors is an ordered collection of independent errors reported together.
type Errors []error

// Add appends each non-nil err. Nested [Errors] are flattened.
func (e *Errors) Add(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}

		if list, ok := err.(Errors); ok {
			*e = append(*e, list...)

			continue
		}

		*e = append(*e, err)
	}
}

// Err returns nil if e is empty, otherwise e itself.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}

	return e
}

// Error returns each error on its own line.
func (e Errors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}

	var sb strings.Builder

	sb.WriteString(strconv.Itoa(len(e)))
	sb.WriteString(" errors:")

	for _, err := range e {
		sb.WriteString("\n\t")
		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Unwrap returns the contained errors for errors.Is/As.
func (e Errors) Unwrap() []error { return e }

// LogValue implements slog.LogValuer, grouping each error by its index.
func (e Errors) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e)+1)
	attrs = append(attrs, slog.Int("count", len(e)))

	for i, err := range e {
		attrs = append(attrs, slog.Any(strconv.Itoa(i), err))
	}

	return slog.GroupValue(attrs...)
}
