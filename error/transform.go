package error

// Transforms on a nil *Error return nil.

// MessagePrefixed returns a copy of e with prefix prepended as "<prefix>: ".
// When e carries field detail the prefix goes on every field message instead
// and Message is left untouched.
func (e *Error) MessagePrefixed(prefix string) *Error {
	if e == nil {
		return nil
	}
	out := *e
	if e.HasErrors() {
		out.fields = e.fields.MapValues(func(m string) string { return prefix + ": " + m })
	} else {
		out.message = prefix + ": " + e.message
	}
	return &out
}

// PathPrefixed returns a copy of e with every field path rewritten to
// "<prefix>.<path>". It is a no-op without field detail.
func (e *Error) PathPrefixed(prefix string) *Error {
	if e == nil {
		return nil
	}
	return e.MapPath(func(p string) string { return prefix + "." + p })
}

// MapPath returns a copy of e with every field path rewritten by mapper.
func (e *Error) MapPath(mapper func(string) string) *Error {
	if e == nil {
		return nil
	}
	out := *e
	if e.HasErrors() {
		out.fields = e.fields.MapKeys(mapper)
	}
	return &out
}

// WithCode returns a copy of e with code replaced.
func (e *Error) WithCode(code uint16) *Error {
	if e == nil {
		return nil
	}
	out := *e
	out.code = code
	return &out
}
