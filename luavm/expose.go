package luavm

import (
	"fmt"
	"reflect"

	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/interp-guard/bind"
	"github.com/wippyai/interp-guard/errors"
)

// DefaultPolicy returns the interpreter's standard call policy, ValuePolicy.
func (ip *Interp) DefaultPolicy() bind.Policy {
	return ValuePolicy{}
}

// Expose converts a guarded callable into a Lua function. Arguments are
// pulled off the Lua stack and converted to the signature's parameter
// types; results cross back according to the policy, with a trailing
// non-nil error raised as a Lua error.
//
// Expose touches the Lua state and therefore requires the interpreter lock
// to be held; Bind arranges that.
func (ip *Interp) Expose(fn any, sig bind.Signature, policy bind.Policy) (bind.Object, error) {
	pol, ok := policy.(ResultPolicy)
	if !ok {
		return nil, errors.BadPolicy(errors.PhaseExpose, fmt.Sprintf("%T", policy))
	}
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return nil, errors.NotAFunction(errors.PhaseExpose, fmt.Sprintf("%T", fn))
	}

	nparams := sig.NumParams()
	errLast := sig.ErrorLast()
	params := make([]reflect.Type, nparams)
	for i := range params {
		params[i] = sig.Param(i)
	}

	lg := func(L *lua.LState) int {
		if L.GetTop() != nparams {
			L.RaiseError("wrong number of arguments: got %d, want %d", L.GetTop(), nparams)
		}
		args := make([]reflect.Value, nparams)
		for i := 0; i < nparams; i++ {
			v, err := toGo(L.Get(i+1), params[i])
			if err != nil {
				L.ArgError(i+1, err.Error())
			}
			args[i] = v
		}

		// fn is already guarded: the interpreter lock is released for the
		// duration of this call and restored before Call returns.
		out := fv.Call(args)

		if errLast {
			errv := out[len(out)-1]
			if !errv.IsNil() {
				L.RaiseError("%s", errv.Interface().(error).Error())
			}
			out = out[:len(out)-1]
		}
		for _, rv := range out {
			L.Push(pol.FromGo(L, rv))
		}
		return len(out)
	}

	return ip.state.NewFunction(lg), nil
}

// Install places obj into the namespace's global table, creating the table
// on first use. Requires the interpreter lock to be held; Bind arranges
// that.
func (ip *Interp) Install(namespace, name string, obj bind.Object) error {
	fn, ok := obj.(*lua.LFunction)
	if !ok {
		return errors.New(errors.PhaseInstall, errors.KindTypeMismatch).
			GoType(fmt.Sprintf("%T", obj)).
			Detail("expected a Lua function").
			Build()
	}
	tbl, ok := ip.state.GetGlobal(namespace).(*lua.LTable)
	if !ok {
		tbl = ip.state.NewTable()
		ip.state.SetGlobal(namespace, tbl)
	}
	tbl.RawSetString(name, fn)
	return nil
}
