// Package bridge carries structured errors across a foreign runtime boundary
// whose native error channel only understands text.
//
// An outgoing *error.Error is encoded as a fresh generic-failure exception of
// the target runtime whose text is Sentinel followed by the error's
// Serializable JSON. An incoming native exception is decoded back into an
// *error.Error; exceptions that did not come from this protocol degrade to a
// message-only error instead of failing. Decoded errors keep the native
// exception as their payload, so re-encoding them to the same runtime returns
// the original object.
//
// The protocol is runtime-agnostic: each runtime binding supplies a Runtime.
//
//	b := bridge.New("lua", luaRuntime, bridge.WithLogger(log))
//	exc := b.Encode(apiError.Pathed("invalid", 400, "email", "required"))
//	back := b.Decode(exc) // same code, message and field errors
package bridge

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	apiError "github.com/next-trace/teo-error/error"
)

const (
	// Sentinel tags text whose remainder is Serializable JSON.
	Sentinel = "TeoError: "
	// RethrownSentinel is Sentinel as seen after a runtime that prefixes
	// rethrown messages with "Error: ".
	RethrownSentinel = "Error: " + Sentinel
)

// Runtime is what the bridge needs from a foreign runtime binding. N is the
// runtime's native exception type.
type Runtime[N any] interface {
	// IsFailure reports whether exc has the runtime's generic failure
	// classification, the only one this protocol produces.
	IsFailure(exc N) bool
	// Text returns the text carried by exc.
	Text(exc N) string
	// NewFailure constructs a fresh generic failure carrying text.
	NewFailure(text string) N
}

// Bridge converts between *error.Error and a runtime's native exceptions.
// It is safe for concurrent use when its Runtime is.
type Bridge[N any] struct {
	name    string
	runtime Runtime[N]
	logger  *zap.Logger
}

// New creates a Bridge for runtime. name identifies the runtime in logs.
func New[N any](name string, runtime Runtime[N], opts ...Option) *Bridge[N] {
	cfg := config{logger: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}
	return &Bridge[N]{
		name:    name,
		runtime: runtime,
		logger:  cfg.logger.With(zap.String("runtime", name)),
	}
}

// Name returns the runtime name the bridge was created with.
func (b *Bridge[N]) Name() string { return b.name }

// Encode converts err into a native exception. An error previously decoded
// from this runtime is returned as the original native object.
func (b *Bridge[N]) Encode(err error) N {
	e := apiError.Ensure(err)
	if e == nil {
		e = apiError.New("unknown error")
	}
	if native, ok := apiError.NativePayload[N](e); ok {
		return native
	}
	return b.runtime.NewFailure(Embed(e))
}

// Decode converts a native exception into an *error.Error. It never fails:
// anything that is not a well-formed protocol exception becomes a plain
// error carrying the exception's text.
func (b *Bridge[N]) Decode(exc N) *apiError.Error {
	text := b.runtime.Text(exc)

	if b.runtime.IsFailure(exc) {
		if payload, ok := cutSentinel(text); ok {
			e, err := parse(payload)
			if err == nil {
				return e.WithNativePayload(exc)
			}
			b.logger.Warn("malformed error envelope", zap.Error(err), zap.String("text", text))
		}
	}

	b.logger.Debug("foreign error degraded to message", zap.String("text", text))
	return apiError.New(text).WithNativePayload(exc)
}

// Embed renders e in the sentinel-tagged text form. Invalid UTF-8 in the
// message or field errors is replaced with U+FFFD, so such bytes do not
// survive a round trip.
func Embed(e *apiError.Error) string {
	// Serializable holds only strings and a uint16, so marshaling cannot fail.
	data, _ := json.Marshal(e.Serializable())
	return Sentinel + string(data)
}

// Extract parses text produced by Embed, with or without the rethrow prefix.
func Extract(text string) (*apiError.Error, bool) {
	payload, ok := cutSentinel(text)
	if !ok {
		return nil, false
	}
	e, err := parse(payload)
	if err != nil {
		return nil, false
	}
	return e, true
}

func parse(payload string) (*apiError.Error, error) {
	var s apiError.Serializable
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, err
	}
	return s.ToError(), nil
}

// cutSentinel strips the longer prefix first so that "Error: " is never
// mistaken for message content.
func cutSentinel(text string) (string, bool) {
	if rest, ok := strings.CutPrefix(text, RethrownSentinel); ok {
		return rest, true
	}
	return strings.CutPrefix(text, Sentinel)
}
