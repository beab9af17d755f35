package error

// Option configures an Error during construction via E().
type Option func(*Error)

// WithStatus sets the classification code during E() construction.
func WithStatus(code uint16) Option { return func(e *Error) { e.code = code } }

// WithFields sets the field-error map during E() construction.
func WithFields(fields Fields) Option { return func(e *Error) { e.fields = fields } }

// WithField adds a single field entry during E() construction.
func WithField(path, message string) Option {
	return func(e *Error) { e.fields = e.fields.With(path, message) }
}

// WithCause sets the underlying cause to be returned by Unwrap().
func WithCause(cause error) Option { return func(e *Error) { e.cause = cause } }

// E is a minimal builder when you don't want to pick a constructor.
// Defaults: Code=500, no field detail.
func E(message string, opts ...Option) *Error {
	e := New(message)
	for _, o := range opts {
		o(e)
	}
	return e
}
