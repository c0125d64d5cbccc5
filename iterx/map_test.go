package iterx

import (
	"github.com/stretchr/testify/assert"
	"slices"
	"testing"
)

func TestSelectPairs(t *testing.T) {
	pairs := SelectPairs([]string{"a", "b", "c"}, []int{1, 2})
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, pairs.Map(), "Extra keys should be ignored")
	assert.Equal(t, []string{"a", "b"}, pairs.Keys().Slice())
	assert.Equal(t, []int{1, 2}, pairs.Values().Slice())
	assert.Equal(t, 2, pairs.Count())
}

func TestMapIter_Filter(t *testing.T) {
	initial := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}
	even := SelectMap(initial).Filter(func(_ string, val int) bool {
		return val%2 == 0
	})
	assert.Equal(t, map[string]int{"b": 2, "d": 4}, even.Map())
}

func TestMapIter_Filter_Break(t *testing.T) {
	pairs := SelectPairs([]string{"a", "b", "c", "d"}, []int{1, 2, 3, 4})
	var keys []string
	assert.NotPanics(t, func() {
		for key := range pairs.Filter(func(string, int) bool { return true }) {
			keys = append(keys, key)
			if key == "b" {
				break
			}
		}
	})
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestMapIter_Keys_Break(t *testing.T) {
	pairs := SelectPairs([]string{"a", "b", "c"}, []int{1, 2, 3})
	var vals []int
	for val := range pairs.Values() {
		vals = append(vals, val)
		break
	}
	assert.Equal(t, []int{1}, vals)
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(pairs.Keys().Seq()))
}

func TestMapIter_First(t *testing.T) {
	key, val, found := SelectPairs([]string{"x", "y"}, []int{9, 8}).First()
	assert.True(t, found)
	assert.Equal(t, "x", key)
	assert.Equal(t, 9, val)

	_, _, found = SelectMap(map[string]int{}).First()
	assert.False(t, found)

	var nilIter MapIter[string, int]
	assert.Zero(t, nilIter.Count())
}

func TestMapIter_HasKey(t *testing.T) {
	pairs := SelectMap(map[int]string{1: "one", 2: "two"})
	assert.True(t, pairs.HasKey(2))
	assert.False(t, pairs.HasKey(3))
}

func TestTransformValues(t *testing.T) {
	pairs := SelectPairs([]string{"a", "b"}, []int{1, 2})
	labels := TransformValues(pairs, func(key string, val int) string {
		return key + "=" + string(rune('0'+val))
	})
	assert.Equal(t, []string{"a=1", "b=2"}, labels.Values().Slice())

	var count int
	for range labels {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
