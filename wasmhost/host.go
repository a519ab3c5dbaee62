package wasmhost

import (
	"context"
	"fmt"
	"reflect"

	"github.com/wippyai/interp-guard/bind"
	"github.com/wippyai/interp-guard/errors"
)

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()

// HostFunc is an exposed, guarded host function staged for instantiation.
type HostFunc struct {
	fn  any
	sig bind.Signature
}

// Func returns the guarded callable. Invoking it requires the store lock
// to be held, exactly as when the guest calls it.
func (h *HostFunc) Func() any {
	return h.fn
}

// Signature returns the shape of the original native function.
func (h *HostFunc) Signature() bind.Signature {
	return h.sig
}

type valuePolicy struct{}

// DefaultPolicy returns the store's only call policy: numeric values
// crossing by copy on the wasm stack.
func (s *Store) DefaultPolicy() bind.Policy {
	return valuePolicy{}
}

// Expose validates the signature against the wazero host ABI and stages
// the guarded callable as a HostFunc.
func (s *Store) Expose(fn any, sig bind.Signature, policy bind.Policy) (bind.Object, error) {
	if _, ok := policy.(valuePolicy); !ok {
		return nil, errors.BadPolicy(errors.PhaseExpose, fmt.Sprintf("%T", policy))
	}
	for i := 0; i < sig.NumParams(); i++ {
		t := sig.Param(i)
		if i == 0 && t == contextType {
			continue
		}
		if !abiNumeric(t) {
			return nil, errors.New(errors.PhaseExpose, errors.KindTypeMismatch).
				GoType(t.String()).
				Detail("wasm host functions accept numeric parameters only").
				Build()
		}
	}
	for i := 0; i < sig.NumResults(); i++ {
		if !abiNumeric(sig.Result(i)) {
			return nil, errors.New(errors.PhaseExpose, errors.KindTypeMismatch).
				GoType(sig.Result(i).String()).
				Detail("wasm host functions return numeric results only").
				Build()
		}
	}
	return &HostFunc{fn: fn, sig: sig}, nil
}

// Install stages a host function under namespace/name until Instantiate.
func (s *Store) Install(namespace, name string, obj bind.Object) error {
	hf, ok := obj.(*HostFunc)
	if !ok {
		return errors.New(errors.PhaseInstall, errors.KindTypeMismatch).
			GoType(fmt.Sprintf("%T", obj)).
			Detail("expected a staged host function").
			Build()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.Closed("store")
	}
	if s.pending[namespace] == nil {
		s.pending[namespace] = make(map[string]*HostFunc)
	}
	s.pending[namespace][name] = hf
	return nil
}

// abiNumeric reports whether t maps onto a wasm core value type.
func abiNumeric(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int32, reflect.Uint32, reflect.Int64, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
