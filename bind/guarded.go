package bind

import (
	"reflect"

	interpguard "github.com/wippyai/interp-guard"
)

// Guarded wraps fn in a function of the identical signature that releases
// lock before calling fn and restores it when fn returns or panics. The
// wrapper copies fn at construction time and is otherwise stateless: each
// invocation constructs its own private guard, so the returned function is
// safe for concurrent use.
//
// The caller must hold the lock when invoking the returned function; that
// is the binding layer's calling convention, not checked here.
func Guarded(lock interpguard.StateLock, fn any) (any, error) {
	if _, err := SignatureOf(fn); err != nil {
		return nil, err
	}
	fv := reflect.ValueOf(fn)
	wrapped := reflect.MakeFunc(fv.Type(), func(args []reflect.Value) []reflect.Value {
		g := interpguard.Release(lock)
		defer g.Restore()
		return fv.Call(args)
	})
	return wrapped.Interface(), nil
}
