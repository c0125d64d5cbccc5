package iterx

import "iter"

type MapIter[K comparable, V any] iter.Seq2[K, V]

// SelectMap translates a built-in map to a [MapIter].
// Iteration order follows the map, so it isn't stable.
func SelectMap[K comparable, V any](m map[K]V) MapIter[K, V] {
	return func(yield func(K, V) bool) {
		for key, val := range m {
			if !yield(key, val) {
				return
			}
		}
	}
}

// SelectPairs creates a [MapIter] that yields keys[n] with vals[n], in slice order.
// Iteration stops at the end of the shorter slice.
func SelectPairs[K comparable, V any](keys []K, vals []V) MapIter[K, V] {
	return func(yield func(K, V) bool) {
		for n := 0; n < len(keys) && n < len(vals); n++ {
			if !yield(keys[n], vals[n]) {
				return
			}
		}
	}
}

// Seq returns i as a plain [iter.Seq2].
func (i MapIter[K, V]) Seq() iter.Seq2[K, V] {
	return iter.Seq2[K, V](i)
}

// Map collects the entries into a new built-in map.
// A later entry replaces an earlier entry with the same key.
func (i MapIter[K, V]) Map() map[K]V {
	m := map[K]V{}
	i(func(key K, val V) bool {
		m[key] = val
		return true
	})
	return m
}

// Filter yields only the entries that keep returns true for.
func (i MapIter[K, V]) Filter(keep func(key K, val V) bool) MapIter[K, V] {
	return func(yield func(K, V) bool) {
		i(func(key K, val V) bool {
			if keep(key, val) {
				return yield(key, val)
			}
			return true
		})
	}
}

func (i MapIter[K, V]) FilterKeys(filter Filter[K]) MapIter[K, V] {
	return i.Filter(func(key K, _ V) bool {
		return filter(key)
	})
}

func (i MapIter[K, V]) Keys() SliceIter[K] {
	return func(yield func(K) bool) {
		i(func(key K, _ V) bool {
			return yield(key)
		})
	}
}

func (i MapIter[K, V]) Values() SliceIter[V] {
	return func(yield func(V) bool) {
		i(func(_ K, val V) bool {
			return yield(val)
		})
	}
}

func (i MapIter[K, V]) ForEach(handler func(key K, val V) bool) {
	if i == nil {
		return
	}
	i(handler)
}

func (i MapIter[K, V]) Count() int {
	var count int
	i.ForEach(func(K, V) bool {
		count++
		return true
	})
	return count
}

func (i MapIter[K, V]) First() (firstKey K, firstVal V, found bool) {
	i.ForEach(func(key K, val V) bool {
		firstKey, firstVal, found = key, val, true
		return false
	})
	return
}

func (i MapIter[K, V]) HasKey(key K) bool {
	_, _, ok := i.FilterKeys(Equal(key)).First()
	return ok
}

// TransformValues replaces every value with the result of transform, keeping the keys and their order.
func TransformValues[K comparable, V1 any, V2 any](input MapIter[K, V1], transform func(key K, val V1) V2) MapIter[K, V2] {
	return func(yield func(K, V2) bool) {
		input(func(key K, val V1) bool {
			return yield(key, transform(key, val))
		})
	}
}
