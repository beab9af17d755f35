package bridge_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/next-trace/teo-error/bridge"
	apiError "github.com/next-trace/teo-error/error"
)

const (
	genericFailure = "GenericFailure"
	invalidArg     = "InvalidArg"
)

// nativeErr mimics a runtime exception carrying a status and a reason.
type nativeErr struct {
	status string
	reason string
}

type fakeRuntime struct{}

func (fakeRuntime) IsFailure(exc *nativeErr) bool { return exc.status == genericFailure }
func (fakeRuntime) Text(exc *nativeErr) string    { return exc.reason }
func (fakeRuntime) NewFailure(text string) *nativeErr {
	return &nativeErr{status: genericFailure, reason: text}
}

func newBridge(opts ...bridge.Option) *bridge.Bridge[*nativeErr] {
	return bridge.New[*nativeErr]("fake", fakeRuntime{}, opts...)
}

func TestEncode_EndToEnd(t *testing.T) {
	t.Parallel()

	b := newBridge()
	e := apiError.Pathed("validation failed", 400, "email", "invalid format")

	exc := b.Encode(e)
	assert.Equal(t, genericFailure, exc.status)
	assert.Equal(t,
		`TeoError: {"code":400,"message":"validation failed","errors":{"email":"invalid format"}}`,
		exc.reason,
	)

	got := b.Decode(exc)
	assert.Equal(t, e.Code(), got.Code())
	assert.Equal(t, e.Message(), got.Message())
	assert.Equal(t, e.Errors().Entries(), got.Errors().Entries())

	native, ok := apiError.NativePayload[*nativeErr](got)
	require.True(t, ok)
	assert.Same(t, exc, native)
}

func TestRoundTrip_PreservesStructure(t *testing.T) {
	t.Parallel()

	b := newBridge()
	tests := []*apiError.Error{
		apiError.New("boom"),
		apiError.NewWithCode("gone", 410),
		apiError.NewWithCode("", 999),
		apiError.E("invalid",
			apiError.WithStatus(422),
			apiError.WithField("zeta", "last letter"),
			apiError.WithField("alpha", "first letter"),
			apiError.WithField("items[0].name", `contains "quotes" and <html>`),
			apiError.WithField("unicode", "ünïcødé ✓\nnew line"),
		),
		apiError.New("TeoError: nested sentinel in message"),
	}

	for _, e := range tests {
		got := b.Decode(b.Encode(e))
		assert.Equal(t, e.Code(), got.Code())
		assert.Equal(t, e.Message(), got.Message())
		assert.Equal(t, e.Errors().Entries(), got.Errors().Entries())
		assert.Equal(t, e.HasErrors(), got.HasErrors())
	}
}

func TestEncode_ReturnsOriginalNative(t *testing.T) {
	t.Parallel()

	b := newBridge()
	orig := &nativeErr{status: invalidArg, reason: "bad argument"}

	decoded := b.Decode(orig)
	assert.Same(t, orig, b.Encode(decoded))

	// Transforms keep the payload, so the original still wins.
	assert.Same(t, orig, b.Encode(decoded.MessagePrefixed("call")))

	// Wrapped in a Go error chain.
	assert.Same(t, orig, b.Encode(errors.Join(errors.New("ctx"), decoded)))
}

func TestEncode_IgnoresOtherPayloads(t *testing.T) {
	t.Parallel()

	b := newBridge()
	e := apiError.NewWithCode("from elsewhere", 409).WithNativePayload("some other runtime")

	exc := b.Encode(e)
	assert.Equal(t, `TeoError: {"code":409,"message":"from elsewhere","errors":null}`, exc.reason)
}

func TestEncode_PlainAndNilErrors(t *testing.T) {
	t.Parallel()

	b := newBridge()

	exc := b.Encode(errors.New("disk full"))
	assert.Equal(t, `TeoError: {"code":500,"message":"disk full","errors":null}`, exc.reason)

	exc = b.Encode(nil)
	assert.Equal(t, `TeoError: {"code":500,"message":"unknown error","errors":null}`, exc.reason)
}

func TestDecode_SentinelPrecedence(t *testing.T) {
	t.Parallel()

	b := newBridge()
	exc := &nativeErr{
		status: genericFailure,
		reason: `Error: TeoError: {"code":403,"message":"denied","errors":{"role":"admin required"}}`,
	}

	got := b.Decode(exc)
	assert.Equal(t, uint16(403), got.Code())
	assert.Equal(t, "denied", got.Message())
	assert.Equal(t, []apiError.Field{{Path: "role", Message: "admin required"}}, got.Errors().Entries())
}

func TestDecode_Degrades(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		exc  *nativeErr
	}{
		{name: "unrelated text", exc: &nativeErr{status: genericFailure, reason: "TypeError: x is undefined"}},
		{name: "empty text", exc: &nativeErr{status: genericFailure, reason: ""}},
		{name: "malformed json", exc: &nativeErr{status: genericFailure, reason: "TeoError: not-json"}},
		{name: "truncated json", exc: &nativeErr{status: genericFailure, reason: `TeoError: {"code":400,"mess`}},
		{name: "rethrown malformed", exc: &nativeErr{status: genericFailure, reason: "Error: TeoError: {"}},
		{
			name: "non-string field value",
			exc:  &nativeErr{status: genericFailure, reason: `TeoError: {"code":400,"message":"m","errors":{"a":1}}`},
		},
		{
			name: "trailing garbage",
			exc:  &nativeErr{status: genericFailure, reason: `TeoError: {"code":400,"message":"m","errors":null} extra`},
		},
		{
			name: "sentinel not at start",
			exc:  &nativeErr{status: genericFailure, reason: ` TeoError: {"code":400,"message":"m","errors":null}`},
		},
		{
			name: "other classification",
			exc:  &nativeErr{status: invalidArg, reason: `TeoError: {"code":400,"message":"m","errors":null}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := newBridge().Decode(tt.exc)
			assert.Equal(t, uint16(500), got.Code())
			assert.Equal(t, tt.exc.reason, got.Message())
			assert.False(t, got.HasErrors())

			native, ok := apiError.NativePayload[*nativeErr](got)
			require.True(t, ok)
			assert.Same(t, tt.exc, native)
		})
	}
}

func TestDecode_Logging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	b := newBridge(bridge.WithLogger(zap.New(core)))

	b.Decode(&nativeErr{status: genericFailure, reason: "TeoError: not-json"})
	warns := logs.FilterMessage("malformed error envelope").All()
	require.Len(t, warns, 1)
	assert.Equal(t, zap.WarnLevel, warns[0].Level)
	assert.Equal(t, "fake", warns[0].ContextMap()["runtime"])

	b.Decode(&nativeErr{status: invalidArg, reason: "nope"})
	assert.Equal(t, 2, logs.FilterMessage("foreign error degraded to message").Len())

	b.Decode(b.Encode(apiError.New("fine")))
	assert.Equal(t, 2, logs.FilterMessage("foreign error degraded to message").Len())
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	t.Parallel()

	b := newBridge(bridge.WithLogger(nil))
	assert.NotPanics(t, func() { b.Decode(&nativeErr{reason: "x"}) })
	assert.Equal(t, "fake", b.Name())
}

func TestEmbedExtract(t *testing.T) {
	t.Parallel()

	e := apiError.Pathed("invalid", 400, "name", "required")
	text := bridge.Embed(e)
	assert.True(t, strings.HasPrefix(text, bridge.Sentinel))

	for _, in := range []string{text, "Error: " + text} {
		got, ok := bridge.Extract(in)
		require.True(t, ok, in)
		assert.Equal(t, e.Code(), got.Code())
		assert.Equal(t, e.Errors().Entries(), got.Errors().Entries())
	}

	_, ok := bridge.Extract("TeoError: not-json")
	assert.False(t, ok)
	_, ok = bridge.Extract("plain")
	assert.False(t, ok)
}

func TestEmbed_InvalidUTF8IsReplaced(t *testing.T) {
	t.Parallel()

	e := apiError.Pathed("bad\xff", 400, "name", "x\xfe")
	got, ok := bridge.Extract(bridge.Embed(e))
	require.True(t, ok)

	assert.Equal(t, "bad\uFFFD", got.Message())
	msg, _ := got.Errors().Get("name")
	assert.Equal(t, "x\uFFFD", msg)
}

func FuzzDecode(f *testing.F) {
	f.Add("TeoError: not-json")
	f.Add(`TeoError: {"code":400,"message":"m","errors":{"a":"b"}}`)
	f.Add(`Error: TeoError: {"code":1,"message":"","errors":null}`)
	f.Add("")
	f.Fuzz(func(t *testing.T, text string) {
		b := newBridge()
		exc := &nativeErr{status: genericFailure, reason: text}

		got := b.Decode(exc)
		if _, ok := bridge.Extract(text); !ok {
			if got.Code() != 500 || got.Message() != text || got.HasErrors() {
				t.Fatalf("unparseable text must decode to a plain error, got %d %q", got.Code(), got.Message())
			}
		}
		if native, _ := apiError.NativePayload[*nativeErr](got); native != exc {
			t.Fatalf("decoded error must carry the native exception")
		}
	})
}
