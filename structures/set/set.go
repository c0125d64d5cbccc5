package set

import "iter"

// Collection is a read-only view of unique items.
// Both [Set] and [Observable] are Collections, so set algebra accepts either.
type Collection[T comparable] interface {
	Has(val T) bool
	Len() int
	All() iter.Seq[T]
}

// Set formalizes set semantics for a map of unique items.
type Set[T comparable] map[T]struct{}

var _ Collection[int] = Set[int]{}

// New creates a new [Set] from the given values.
// The returned [Set] will have no values if none are given.
func New[T comparable](vals ...T) Set[T] {
	s := Set[T]{}
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// From creates a new [Set] with every item of a [Collection].
func From[T comparable](other Collection[T]) Set[T] {
	s := Set[T]{}
	if other == nil {
		return s
	}
	for v := range other.All() {
		s[v] = struct{}{}
	}
	return s
}

// FromKeys will create a new [Set] from the keys of the given map, if any are present.
func FromKeys[T comparable, E any](vals map[T]E) Set[T] {
	s := Set[T]{}
	for v := range vals {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Len() int {
	return len(s)
}

// All iterates the items in no particular order.
func (s Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

func (s Set[T]) Slice() []T {
	if len(s) == 0 {
		return nil
	}
	vals := make([]T, 0, len(s))
	for val := range s {
		vals = append(vals, val)
	}
	return vals
}

func (s Set[T]) Add(val T, others ...T) Set[T] {
	if s == nil {
		s = Set[T]{}
	}
	s[val] = struct{}{}
	for _, v := range others {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Remove(val T, others ...T) Set[T] {
	if s == nil {
		s = Set[T]{}
	}
	delete(s, val)
	for _, v := range others {
		delete(s, v)
	}
	return s
}

func (s Set[T]) Has(val T) bool {
	_, ok := s[val]
	return ok
}

// HasAny determines if any of the given values are present in the [Set].
// If the parameter list is empty, then false is returned.
func (s Set[T]) HasAny(values ...T) bool {
	for _, value := range values {
		if s.Has(value) {
			return true
		}
	}
	return false
}

// HasAll determines if all given values are present in the [Set].
// If the parameter list is empty, then false is returned.
func (s Set[T]) HasAll(values ...T) bool {
	if len(s) == 0 || len(values) == 0 {
		return false
	}
	for _, value := range values {
		if !s.Has(value) {
			return false
		}
	}
	return true
}

// Intersection returns a new [Set] with only the values common between collections.
func (s Set[T]) Intersection(other Collection[T]) Set[T] {
	inter := Set[T]{}
	intersection[T](s, other, inter.put)
	return inter
}

// Difference returns a new [Set] with the values of other removed.
func (s Set[T]) Difference(other Collection[T]) Set[T] {
	diff := Set[T]{}
	difference[T](s, other, diff.put)
	return diff
}

// Union returns a new [Set] with all values from both collections.
func (s Set[T]) Union(other Collection[T]) Set[T] {
	u := Set[T]{}
	union[T](s, other, u.put)
	return u
}

// SymmetricDifference returns a new [Set] with the values that are in exactly one of the collections.
func (s Set[T]) SymmetricDifference(other Collection[T]) Set[T] {
	diff := Set[T]{}
	symmetricDifference[T](s, other, diff.put)
	return diff
}

// IsSubsetOf reports whether every value of s is in other.
func (s Set[T]) IsSubsetOf(other Collection[T]) bool {
	return isSubset[T](s, other)
}

// IsSupersetOf reports whether every value of other is in s.
func (s Set[T]) IsSupersetOf(other Collection[T]) bool {
	return isSubset[T](other, s)
}

// IsDisjointFrom reports whether s and other have no values in common.
func (s Set[T]) IsDisjointFrom(other Collection[T]) bool {
	return isDisjoint[T](s, other)
}

func (s Set[T]) put(val T) {
	s[val] = struct{}{}
}

func (s Set[T]) Copy() Set[T] {
	return New[T](s.Slice()...)
}

func items[T comparable](c Collection[T]) iter.Seq[T] {
	if c == nil {
		return func(func(T) bool) {}
	}
	return c.All()
}

func has[T comparable](c Collection[T], val T) bool {
	return c != nil && c.Has(val)
}

func intersection[T comparable](a, b Collection[T], put func(T)) {
	for v := range items(a) {
		if has(b, v) {
			put(v)
		}
	}
}

func difference[T comparable](a, b Collection[T], put func(T)) {
	for v := range items(a) {
		if !has(b, v) {
			put(v)
		}
	}
}

func union[T comparable](a, b Collection[T], put func(T)) {
	for v := range items(a) {
		put(v)
	}
	for v := range items(b) {
		put(v)
	}
}

func symmetricDifference[T comparable](a, b Collection[T], put func(T)) {
	difference(a, b, put)
	difference(b, a, put)
}

func isSubset[T comparable](a, b Collection[T]) bool {
	for v := range items(a) {
		if !has(b, v) {
			return false
		}
	}
	return true
}

func isDisjoint[T comparable](a, b Collection[T]) bool {
	for v := range items(a) {
		if has(b, v) {
			return false
		}
	}
	return true
}
