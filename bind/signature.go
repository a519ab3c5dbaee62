package bind

import (
	"fmt"
	"reflect"

	"github.com/wippyai/interp-guard/errors"
)

// MaxArity is the hard limit on wrapped-callable parameters. For unbound
// methods the receiver counts as the first parameter.
const MaxArity = 4

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Signature is the reflect-decomposed shape of a callable: its parameter
// and result types. Adapters use it to drive argument and result
// conversion without re-inspecting the callable.
type Signature struct {
	fn reflect.Type
}

// SignatureOf inspects fn's compile-time shape. It rejects non-functions,
// variadic functions and functions with more than MaxArity parameters;
// these are design limits of the wrapper, reported at wrap time rather
// than at call time.
func SignatureOf(fn any) (Signature, error) {
	if fn == nil {
		return Signature{}, errors.NotAFunction(errors.PhaseWrap, "<nil>")
	}
	t := reflect.TypeOf(fn)
	if t.Kind() != reflect.Func {
		return Signature{}, errors.NotAFunction(errors.PhaseWrap, t.String())
	}
	if t.IsVariadic() {
		return Signature{}, errors.Variadic(errors.PhaseWrap, t.String())
	}
	if t.NumIn() > MaxArity {
		return Signature{}, errors.ArityLimit(errors.PhaseWrap, t.String(), t.NumIn())
	}
	return Signature{fn: t}, nil
}

// Func returns the full function type.
func (s Signature) Func() reflect.Type {
	return s.fn
}

// NumParams returns the number of parameters.
func (s Signature) NumParams() int {
	return s.fn.NumIn()
}

// Param returns the i'th parameter type.
func (s Signature) Param(i int) reflect.Type {
	return s.fn.In(i)
}

// NumResults returns the number of results.
func (s Signature) NumResults() int {
	return s.fn.NumOut()
}

// Result returns the i'th result type.
func (s Signature) Result(i int) reflect.Type {
	return s.fn.Out(i)
}

// ErrorLast reports whether the final result is an error, the Go
// convention adapters map onto the interpreter's own failure path.
func (s Signature) ErrorLast() bool {
	n := s.fn.NumOut()
	return n > 0 && s.fn.Out(n-1) == errorType
}

func (s Signature) String() string {
	if s.fn == nil {
		return "<none>"
	}
	return s.fn.String()
}

// MethodOf synthesizes the free-function form of a named method: the
// returned callable has the receiver as its first parameter, matching the
// calling convention binding layers expect for "self" arguments.
//
//	fn, _ := bind.MethodOf(&Counter{}, "Add")
//	// fn is func(*Counter, int) int
//
// recv only supplies the type; the returned function is unbound and must
// be invoked with an instance as its first argument.
func MethodOf(recv any, name string) (any, error) {
	if recv == nil {
		return nil, errors.InvalidInput(errors.PhaseWrap, "receiver cannot be nil")
	}
	t := reflect.TypeOf(recv)
	m, ok := t.MethodByName(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseWrap, "method", fmt.Sprintf("%s.%s", t.String(), name))
	}
	return m.Func.Interface(), nil
}
