// Package luabridge binds the error bridge to gopher-lua.
//
// The native exception type is *lua.ApiError. Errors this package raises are
// run-time errors (lua.ApiErrorRun) whose error object is the sentinel-tagged
// text, so they survive pcall/error rethrows inside Lua scripts:
//
//	L.SetGlobal("save", L.NewFunction(b.Func(func(L *lua.LState) (int, error) {
//		return 0, apiError.Pathed("invalid", 400, "email", "required")
//	})))
//	err := L.DoString(`save()`)
//	e := b.FromError(err) // code 400, errors {"email": "required"}
package luabridge

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/next-trace/teo-error/bridge"
	apiError "github.com/next-trace/teo-error/error"
)

// Name identifies this runtime in bridge logs.
const Name = "lua"

type runtime struct{}

func (runtime) IsFailure(exc *lua.ApiError) bool {
	return exc != nil && exc.Type == lua.ApiErrorRun
}

func (runtime) Text(exc *lua.ApiError) string {
	switch {
	case exc == nil:
		return ""
	case exc.Object != nil:
		return exc.Object.String()
	case exc.Cause != nil:
		return exc.Cause.Error()
	default:
		return ""
	}
}

func (runtime) NewFailure(text string) *lua.ApiError {
	return &lua.ApiError{Type: lua.ApiErrorRun, Object: lua.LString(text)}
}

// Bridge converts between *error.Error and gopher-lua errors.
type Bridge struct {
	*bridge.Bridge[*lua.ApiError]
}

// New creates a Bridge. It holds no LState and can serve any number of them.
func New(opts ...bridge.Option) *Bridge {
	return &Bridge{Bridge: bridge.New[*lua.ApiError](Name, runtime{}, opts...)}
}

// FromError decodes an error returned by DoString, PCall and friends. Errors
// that are not *lua.ApiError are adapted with error.Ensure.
func (b *Bridge) FromError(err error) *apiError.Error {
	if err == nil {
		return nil
	}
	var exc *lua.ApiError
	if errors.As(err, &exc) {
		return b.Decode(exc)
	}
	return apiError.Ensure(err)
}

// Raise raises err as a Lua error from inside a Go function called by L.
// It does not return.
func (b *Bridge) Raise(L *lua.LState, err error) {
	exc := b.Encode(err)
	var obj lua.LValue = lua.LString(runtime{}.Text(exc))
	if exc != nil && exc.Object != nil {
		obj = exc.Object
	}
	// level 0 keeps position information out of the carried text.
	L.Error(obj, 0)
}

// Func adapts fn into a lua.LGFunction that raises fn's error through the
// bridge.
func (b *Bridge) Func(fn func(L *lua.LState) (int, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		n, err := fn(L)
		if err != nil {
			b.Raise(L, err)
			return 0
		}
		return n
	}
}
