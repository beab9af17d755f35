// Package main demonstrates usage of the teo-error packages.
package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/next-trace/teo-error/bridge"
	"github.com/next-trace/teo-error/bridge/luabridge"
	"github.com/next-trace/teo-error/contract"
	apiError "github.com/next-trace/teo-error/error"
)

func main() {
	log, _ := zap.NewDevelopment()
	defer func() { _ = log.Sync() }()

	// Direct construction and annotation as the error propagates.
	e := apiError.Pathed("validation failed", 400, "email", "invalid format").
		PathPrefixed("user")
	log.Info("built error", zap.Object("error", e))
	fmt.Println(bridge.Embed(e))

	// Round trip through a Lua script that catches and rethrows.
	b := luabridge.New(bridge.WithLogger(log))
	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("register", L.NewFunction(b.Func(func(*lua.LState) (int, error) {
		return 0, e
	})))

	err := L.DoString(`
		local ok, err = pcall(register)
		if not ok then error(err, 0) end
	`)
	describe(b.FromError(err))

	// Errors the script raises on its own degrade to message-only.
	describe(b.FromError(L.DoString(`error("boom", 0)`)))
}

func describe(e contract.Error) {
	fmt.Printf("%d %s: %s\n", e.Code(), e.Title(), e.Message())
	for path, msg := range e.FieldErrors() {
		fmt.Printf("  %s: %s\n", path, msg)
	}
}
