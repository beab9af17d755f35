package error

import (
	"encoding/json"
	"iter"
	"reflect"

	"go.uber.org/zap/zapcore"

	"github.com/next-trace/teo-error/contract"
)

// defaultCode is the classification used when nothing more specific is known.
const defaultCode uint16 = 500

// Error is the structured error value shared across runtime boundaries.
//
// Fields:
//   - Code:    numeric status classifier (HTTP-like, not HTTP-specific)
//   - Message: primary human-readable description
//   - Errors:  ordered field-path -> message detail (absent when empty)
//   - native:  opaque handle to the foreign error this value was decoded
//     from; only bridges look at it
//
// An Error is never mutated after construction.
type Error struct {
	code    uint16
	message string
	fields  Fields
	native  any
	cause   error
}

// compile-time guarantee that *Error implements contract.Error
var _ contract.Error = (*Error)(nil)

// ------ standard error interface

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

// ------ contract.Error getters

func (e *Error) Code() uint16    { return e.code }
func (e *Error) Message() string { return e.message }
func (e *Error) Title() string   { return InferredTitle(e.code) }

// Errors returns the field-error map. It is empty when HasErrors is false.
func (e *Error) Errors() Fields { return e.fields }

// HasErrors reports whether the error carries field-level detail.
func (e *Error) HasErrors() bool { return e.fields.Len() > 0 }

func (e *Error) FieldErrors() iter.Seq2[string, string] { return e.fields.All() }

// ------ core constructors

// New creates an Error with code 500 and no field detail.
func New(message string) *Error {
	return &Error{code: defaultCode, message: message}
}

// NewWithCode creates an Error with the given code.
func NewWithCode(message string, code uint16) *Error {
	return &Error{code: code, message: message}
}

// NewWithErrors creates an Error carrying field detail. An empty fields map
// is treated as no detail.
func NewWithErrors(message string, code uint16, fields Fields) *Error {
	return &Error{code: code, message: message, fields: fields}
}

// Pathed creates an Error with a single field entry.
func Pathed(message string, code uint16, path, detail string) *Error {
	return NewWithErrors(message, code, NewFields(Field{Path: path, Message: detail}))
}

// ------ native payload

// WithNativePayload returns a copy of e holding v as its native payload.
// A nil v, including a typed nil pointer, clears the payload. Only runtime
// bridges should call this.
func (e *Error) WithNativePayload(v any) *Error {
	if e == nil {
		return nil
	}
	out := *e
	out.native = v
	if isNil(v) {
		out.native = nil
	}
	return &out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// NativePayload returns e's native payload if it is a T. Absence is the
// normal case for errors that never crossed a bridge.
func NativePayload[T any](e *Error) (T, bool) {
	var zero T
	if e == nil || e.native == nil {
		return zero, false
	}
	v, ok := e.native.(T)
	return v, ok
}

// ------ encoding

// MarshalJSON encodes e as its Serializable projection.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Serializable())
}

// MarshalLogObject implements zapcore.ObjectMarshaler so an Error can be
// logged with zap.Object.
func (e *Error) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint16("code", e.code)
	enc.AddString("title", e.Title())
	enc.AddString("message", e.message)
	if e.HasErrors() {
		return enc.AddObject("errors", e.fields)
	}
	return nil
}
