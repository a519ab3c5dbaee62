// Package bind wraps native Go callables so that every invocation through an
// interpreter binding automatically releases the interpreter's global
// exclusivity lock for the duration of the call.
//
// # Quick Start
//
//	// interp implements both bind.Exposer and interpguard.StateLock
//	obj, err := bind.With(interp, interp, func(a, b int) int { return a + b })
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The returned Object is interpreter-native. When the interpreter invokes
// it, the lock is released, the Go function runs with the forwarded
// arguments, and the lock is restored before control returns to the
// interpreter. This holds on panic paths as well.
//
// # Supported Callables
//
// Free functions, closures and bound methods with up to four parameters are
// supported; variadic functions are not. For the unbound form of a method,
// MethodOf synthesizes the equivalent free function whose first parameter is
// the receiver:
//
//	fn, err := bind.MethodOf(&Counter{}, "Add")  // func(*Counter, int) int
//
// The receiver counts toward the four-parameter limit.
//
// Unsupported shapes are rejected when the wrapper is built, never at call
// time. Call-time failures originate solely in the wrapped function and
// propagate unchanged.
//
// # Batch Registration
//
// A Registry collects namespaced functions and binds them all at once
// against an adapter that implements Installer:
//
//	reg := bind.NewRegistry()
//	reg.RegisterFunc("native", "add", add)
//	reg.RegisterHost(myHost) // exported methods, PascalCase -> kebab-case
//	err := reg.Bind(interp, interp)
package bind
