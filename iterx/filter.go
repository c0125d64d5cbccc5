package iterx

// Filter returns true if an element should be yielded to the caller.
type Filter[T any] func(T) bool

// Any creates a [Filter] that matches every element.
func Any[T any]() Filter[T] {
	return func(T) bool {
		return true
	}
}

// Equal creates a [Filter] that matches elements equal to expected.
func Equal[T comparable](expected T) Filter[T] {
	return func(val T) bool {
		return val == expected
	}
}

// Not inverts a [Filter].
func (f Filter[T]) Not() Filter[T] {
	return func(val T) bool {
		return !f(val)
	}
}
