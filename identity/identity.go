// Package identity provides the change-detection comparison used by observable containers.
//
// Identity differs from == in two ways for floating point values: positive and negative zero are different, and NaN is the same as NaN.
// Reference types (slices, maps, pointers, channels) are compared by reference, not by content.
// Structs and arrays are compared field by field with the same rules, so types that aren't comparable with == may still be compared.
// Functions are never the same unless both are nil, since Go offers no reliable function identity.
package identity

import (
	"math"
	"reflect"
)

// Comparator reports whether a and b should be treated as the same value, so that setting b over a is not a change.
type Comparator[T any] func(a, b T) bool

// Same reports whether a and b are identical.
func Same[T any](a, b T) bool {
	switch x := any(a).(type) {
	case float64:
		y, ok := any(b).(float64)
		return ok && sameFloat(x, y)
	case float32:
		y, ok := any(b).(float32)
		return ok && sameFloat(float64(x), float64(y))
	case int:
		y, ok := any(b).(int)
		return ok && x == y
	case string:
		y, ok := any(b).(string)
		return ok && x == y
	case bool:
		y, ok := any(b).(bool)
		return ok && x == y
	}
	return same(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func sameFloat(a, b float64) bool {
	if a == b {
		// Catches +0 vs -0, which compare equal.
		return math.Signbit(a) == math.Signbit(b)
	}
	return math.IsNaN(a) && math.IsNaN(b)
}

func same(a, b reflect.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return sameFloat(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		ac, bc := a.Complex(), b.Complex()
		return sameFloat(real(ac), real(bc)) && sameFloat(imag(ac), imag(bc))
	case reflect.String:
		return a.String() == b.String()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ae, be := a.Elem(), b.Elem()
		if ae.Type() != be.Type() {
			return false
		}
		return same(ae, be)
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Slice:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return a.Pointer() == b.Pointer() && a.Len() == b.Len() && a.Cap() == b.Cap()
	case reflect.Func:
		return a.IsNil() && b.IsNil()
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !same(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		if a.Type() != b.Type() {
			return false
		}
		for i := 0; i < a.NumField(); i++ {
			if !same(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	}
	return false
}
