package iterx

import "iter"

type SliceIter[T any] iter.Seq[T]

// SelectAll translates a slice into a [SliceIter].
func SelectAll[T any](slice []T) SliceIter[T] {
	return Select(slice, Any[T]())
}

// Select uses filter to select elements from a slice.
// A nil filter panics when the iterator is used.
func Select[T any](slice []T, filter Filter[T]) SliceIter[T] {
	return func(yield func(T) bool) {
		if filter == nil {
			panic("nil filter")
		}
		for _, element := range slice {
			if filter(element) && !yield(element) {
				return
			}
		}
	}
}

// Seq returns i as a plain [iter.Seq].
func (i SliceIter[T]) Seq() iter.Seq[T] {
	return iter.Seq[T](i)
}

func (i SliceIter[T]) Slice() []T {
	var elements []T
	i(func(element T) bool {
		elements = append(elements, element)
		return true
	})
	return elements
}

func (i SliceIter[T]) Filter(filter Filter[T]) SliceIter[T] {
	return func(yield func(T) bool) {
		i(func(element T) bool {
			if filter(element) {
				return yield(element)
			}
			return true
		})
	}
}

func (i SliceIter[T]) Count() int {
	if i == nil {
		return 0
	}
	var count int
	i(func(T) bool {
		count++
		return true
	})
	return count
}

func (i SliceIter[T]) First() (T, bool) {
	var (
		val   T
		found bool
	)
	i(func(v T) bool {
		val, found = v, true
		return false
	})
	return val, found
}
