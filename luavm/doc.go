// Package luavm adapts a gopher-lua interpreter to the interp-guard model.
//
// An Interp owns an *lua.LState and the global exclusivity lock that
// serializes all access to it. Interpreter code runs through Do or DoString
// with the lock held; native functions exposed through the bind package
// release the lock for the duration of their bodies, so other goroutines
// can drive other interpreters (or wait for this one) while native code
// runs.
//
//	ip := luavm.New()
//	defer ip.Close()
//
//	reg := bind.NewRegistry()
//	reg.RegisterFunc("native", "add", func(a, b int) int { return a + b })
//	if err := ip.Bind(reg); err != nil {
//	    log.Fatal(err)
//	}
//
//	err := ip.DoString(`result = native.add(2, 3)`)
//
// # Call Policies
//
// ValuePolicy (the default) moves results across by value: pointers are
// dereferenced and their pointees copied, so Lua never shares memory with
// native code. ReferencePolicy wraps pointer results as userdata that
// reference the same Go object, for natives that hand out handles on
// purpose.
//
// # Error Convention
//
// If a native function's last result is an error and it is non-nil, the
// adapter raises it as a Lua error; the remaining results are what the Lua
// caller sees on success.
package luavm
