// Package interpguard releases an embedded interpreter's global exclusivity
// lock for the duration of a call into native Go code, and wraps native
// callables so that every invocation through a binding layer applies that
// release/reacquire pair automatically.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	interpguard/     Root package with the Token, StateLock and Guard primitives
//	├── bind/        Signature introspection, guarded wrappers, factories, registry
//	├── luavm/       gopher-lua interpreter adapter
//	├── wasmhost/    wazero host-function adapter
//	└── errors/      Structured error types for debugging
//
// # The Lock Model
//
// An embedded interpreter that is not safe for concurrent use is driven
// under a single process-wide exclusivity lock. While a goroutine holds the
// lock it may touch interpreter-managed objects; while it runs long native
// code it should not hold the lock, so other goroutines can make progress.
//
// StateLock models that lock as an explicit capability: Release unlocks and
// hands back an opaque Token carrying whatever saved execution state the
// interpreter needs, Restore blocks until the lock is reacquired and
// consumes the token.
//
// # Guards
//
// A Guard pairs one Release with exactly one Restore:
//
//	g := interpguard.Release(lock)
//	defer g.Restore()
//	// lock is released in this window; do not touch interpreter state
//
// The deferred Restore runs on panic as well, so the lock is reacquired on
// every exit path.
//
// # Wrapping Callables
//
// Most users never construct guards directly. The bind package wraps a
// native function so each invocation releases the lock, calls the function
// with the forwarded arguments, and restores the lock before returning:
//
//	obj, err := bind.With(interp, interp, func(a, b int) int { return a + b })
//
// The returned object is interpreter-native; from the interpreter's side it
// behaves exactly like exposing the function directly, except the lock is
// dropped for the duration of each call.
//
// # Thread Safety
//
// Wrapped callables are safe for concurrent invocation: each call constructs
// its own private guard. A Guard itself belongs to a single goroutine.
package interpguard
