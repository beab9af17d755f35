// Package jsbridge binds the error bridge to the goja JavaScript runtime.
//
// The native exception is the thrown goja.Value. Errors this package throws
// are plain Error objects whose message is the sentinel-tagged text. Script
// code that rethrows through new Error(String(e)) yields the
// "Error: TeoError: " form, which decodes to the same structured error.
package jsbridge

import (
	"errors"

	"github.com/dop251/goja"

	"github.com/next-trace/teo-error/bridge"
	apiError "github.com/next-trace/teo-error/error"
)

// Name identifies this runtime in bridge logs.
const Name = "js"

// failureName is the name of the generic Error class.
const failureName = "Error"

type runtime struct {
	vm *goja.Runtime
}

// unprintable is the text of a thrown value that cannot be converted to a
// string without failing.
const unprintable = "[object]"

// IsFailure and Text may run script code (getters, toString) that throws,
// so both go through safely.
func (r runtime) IsFailure(exc goja.Value) bool {
	obj, ok := exc.(*goja.Object)
	if !ok || obj == nil || obj.ClassName() != failureName {
		return false
	}
	var failure bool
	r.safely(func() {
		name := obj.Get("name")
		failure = name != nil && name.String() == failureName
	})
	return failure
}

func (r runtime) Text(exc goja.Value) string {
	if exc == nil {
		return ""
	}
	text := unprintable
	r.safely(func() {
		if obj, ok := exc.(*goja.Object); ok && obj != nil && obj.ClassName() == failureName {
			if msg := obj.Get("message"); msg != nil {
				text = msg.String()
				return
			}
		}
		text = exc.String()
	})
	return text
}

// safely runs f, reporting false if it threw or panicked.
func (r runtime) safely(f func()) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return r.vm.Try(f) == nil
}

func (r runtime) NewFailure(text string) goja.Value {
	if ctor, ok := goja.AssertConstructor(r.vm.Get(failureName)); ok {
		if obj, err := ctor(nil, r.vm.ToValue(text)); err == nil {
			return obj
		}
	}
	// The global Error constructor was replaced; a bare string still carries
	// the text.
	return r.vm.ToValue(text)
}

// Bridge converts between *error.Error and values thrown in a goja.Runtime.
// Like the runtime itself it must not be used from several goroutines.
type Bridge struct {
	*bridge.Bridge[goja.Value]
}

// New creates a Bridge bound to vm.
func New(vm *goja.Runtime, opts ...bridge.Option) *Bridge {
	return &Bridge{Bridge: bridge.New[goja.Value](Name, runtime{vm: vm}, opts...)}
}

// FromError decodes an error returned by RunString, a goja.Callable and
// friends. Errors that are not *goja.Exception (interrupts, compile errors)
// are adapted with error.Ensure.
func (b *Bridge) FromError(err error) *apiError.Error {
	if err == nil {
		return nil
	}
	var exc *goja.Exception
	if errors.As(err, &exc) {
		return b.Decode(exc.Value())
	}
	return apiError.Ensure(err)
}

// Throw throws err into the running script. It must be called from a Go
// function invoked by the script and does not return.
func (b *Bridge) Throw(err error) {
	panic(b.Encode(err))
}

// Func adapts fn into a native function that throws fn's error through the
// bridge. Register it with vm.Set.
func (b *Bridge) Func(fn func(call goja.FunctionCall) (goja.Value, error)) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		v, err := fn(call)
		if err != nil {
			b.Throw(err)
		}
		if v == nil {
			return goja.Undefined()
		}
		return v
	}
}
