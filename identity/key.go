package identity

import (
	"math"
	"reflect"
)

// Key wraps a map key so that every NaN is the same key.
// A NaN stored directly as a Go map key can never be read or removed again, since NaN != NaN.
// Only keys whose type is a floating point kind are normalized. NaN held in an interface, struct, or array key is left as is.
type Key[K comparable] struct {
	val K
	nan bool
}

// KeyOf returns the [Key] for k.
func KeyOf[K comparable](k K) Key[K] {
	if IsNaN(k) {
		return Key[K]{nan: true}
	}
	return Key[K]{val: k}
}

// Value returns the wrapped key.
// All NaN keys come back as the same NaN.
func (k Key[K]) Value() K {
	if !k.nan {
		return k.val
	}
	var val K
	reflect.ValueOf(&val).Elem().SetFloat(math.NaN())
	return val
}

// IsNaN reports whether v is NaN, where T is a float type or a named type based on one.
func IsNaN[T any](v T) bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(reflect.ValueOf(v).Float())
	}
	return false
}
