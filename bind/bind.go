package bind

import (
	interpguard "github.com/wippyai/interp-guard"
)

// Policy is an opaque call-policy configuration understood by an
// interpreter adapter: ownership and lifetime rules for arguments and
// results. The zero policy of an adapter is returned by its DefaultPolicy.
type Policy any

// Object is an interpreter-native callable produced by an Exposer. Its
// concrete type belongs to the adapter; this layer only hands it back to
// the caller or to an Installer.
type Object any

// Exposer is an interpreter's generic function-exposition facility. Expose
// receives an already-guarded callable together with the signature of the
// original function and a call policy, and returns an interpreter-native
// callable object.
//
// Adapters may require the interpreter lock to be held around Expose; see
// the adapter's documentation.
type Exposer interface {
	Expose(fn any, sig Signature, policy Policy) (Object, error)

	// DefaultPolicy returns the interpreter's standard call policy.
	DefaultPolicy() Policy
}

// Installer is an Exposer that can also install exposed objects under a
// namespace/name pair. Registry.Bind drives it.
type Installer interface {
	Exposer
	Install(namespace, name string, obj Object) error
}

// With wraps fn with a guard for lock and exposes it through e using the
// interpreter's default call policy. From the interpreter's perspective
// the result behaves exactly like exposing fn directly, except the lock is
// released for the duration of every call.
func With(e Exposer, lock interpguard.StateLock, fn any) (Object, error) {
	return WithPolicy(e, lock, fn, e.DefaultPolicy())
}

// WithPolicy is With with an explicitly supplied call policy.
func WithPolicy(e Exposer, lock interpguard.StateLock, fn any, policy Policy) (Object, error) {
	sig, err := SignatureOf(fn)
	if err != nil {
		return nil, err
	}
	wrapped, err := Guarded(lock, fn)
	if err != nil {
		return nil, err
	}
	return e.Expose(wrapped, sig, policy)
}
