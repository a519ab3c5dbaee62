package luavm

import (
	"reflect"

	lua "github.com/yuin/gopher-lua"
)

// ResultPolicy decides how a Go result value crosses into the interpreter.
// The adapter's policies implement it; bind.Policy values handed to Expose
// must satisfy this interface.
type ResultPolicy interface {
	FromGo(L *lua.LState, v reflect.Value) lua.LValue
}

// ValuePolicy is the default call policy: results cross by value. Pointer
// results are dereferenced and their pointees copied, so the interpreter
// never shares memory with native code.
type ValuePolicy struct{}

func (ValuePolicy) FromGo(L *lua.LState, v reflect.Value) lua.LValue {
	if lv, ok := scalarToLua(v); ok {
		return lv
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return lua.LNil
		}
		v = v.Elem()
		if lv, ok := scalarToLua(v); ok {
			return lv
		}
	}
	ud := L.NewUserData()
	ud.Value = v.Interface() // a copy at this point
	return ud
}

// ReferencePolicy shares pointer results with the interpreter: the
// userdata references the same Go object the native function returned.
type ReferencePolicy struct{}

func (ReferencePolicy) FromGo(L *lua.LState, v reflect.Value) lua.LValue {
	if lv, ok := scalarToLua(v); ok {
		return lv
	}
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return lua.LNil
	}
	ud := L.NewUserData()
	ud.Value = v.Interface()
	return ud
}
