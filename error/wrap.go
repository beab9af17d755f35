package error

import (
	"errors"
)

// Ensure converts any error to *Error.
//
// Behavior:
//   - nil input, or a typed nil *Error => nil output
//   - if err is, or wraps, an *Error => that value is returned as-is
//   - otherwise a plain Error (code 500) carrying err's text, with err kept
//     as the cause for errors.Is / errors.As
func Ensure(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error

	if errors.As(err, &e) {
		return e
	}

	return E(err.Error(), WithCause(err))
}

// As reports whether err is, or wraps, an *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Prefix annotates err as it propagates up a call chain. It returns nil for
// a nil err or a typed nil *Error; see (*Error).MessagePrefixed for where
// the prefix lands.
func Prefix(err error, prefix string) error {
	e := Ensure(err)
	if e == nil {
		return nil
	}
	return e.MessagePrefixed(prefix)
}
