package luavm

import (
	"math"
	"reflect"

	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/interp-guard/errors"
)

// isIntegral reports whether a Lua number can cross into an integer
// parameter without truncation.
func isIntegral(n lua.LNumber) bool {
	return float64(n) == math.Trunc(float64(n))
}

// toGo converts a Lua value to the given Go parameter type.
func toGo(lv lua.LValue, t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Bool:
		if b, ok := lv.(lua.LBool); ok {
			v := reflect.New(t).Elem()
			v.SetBool(bool(b))
			return v, nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := lv.(lua.LNumber); ok && isIntegral(n) {
			v := reflect.New(t).Elem()
			v.SetInt(int64(n))
			return v, nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, ok := lv.(lua.LNumber); ok && isIntegral(n) && n >= 0 {
			v := reflect.New(t).Elem()
			v.SetUint(uint64(n))
			return v, nil
		}
	case reflect.Float32, reflect.Float64:
		if n, ok := lv.(lua.LNumber); ok {
			v := reflect.New(t).Elem()
			v.SetFloat(float64(n))
			return v, nil
		}
	case reflect.String:
		if s, ok := lv.(lua.LString); ok {
			v := reflect.New(t).Elem()
			v.SetString(string(s))
			return v, nil
		}
	case reflect.Interface:
		if t.NumMethod() == 0 {
			v := reflect.New(t).Elem()
			if g := fromLua(lv); g != nil {
				v.Set(reflect.ValueOf(g))
			}
			return v, nil
		}
	default:
		if ud, ok := lv.(*lua.LUserData); ok {
			rv := reflect.ValueOf(ud.Value)
			if rv.IsValid() && rv.Type().AssignableTo(t) {
				return rv, nil
			}
		}
	}
	return reflect.Value{}, errors.TypeMismatch(errors.PhaseCall, nil, t.String(), lv.Type().String())
}

// fromLua converts a Lua value to its natural Go representation for empty
// interface parameters.
func fromLua(lv lua.LValue) any {
	switch v := lv.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LUserData:
		return v.Value
	default:
		return lv
	}
}

// scalarToLua converts simple Go values; reports false for shapes the
// policies must handle themselves.
func scalarToLua(v reflect.Value) (lua.LValue, bool) {
	switch v.Kind() {
	case reflect.Invalid:
		return lua.LNil, true
	case reflect.Bool:
		return lua.LBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return lua.LNumber(v.Float()), true
	case reflect.String:
		return lua.LString(v.String()), true
	case reflect.Interface:
		if v.IsNil() {
			return lua.LNil, true
		}
		return scalarToLua(v.Elem())
	}
	return lua.LNil, false
}
