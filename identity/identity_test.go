package identity

import (
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

func TestSame_Floats(t *testing.T) {
	negZero := math.Copysign(0, -1)
	assert.False(t, Same(0.0, negZero), "Signed zeros should be different")
	assert.True(t, Same(negZero, negZero))
	assert.True(t, Same(math.NaN(), math.NaN()), "NaN should be the same as NaN")
	assert.False(t, Same(math.NaN(), 1.0))
	assert.True(t, Same(1.5, 1.5))
	assert.False(t, Same(float32(0), float32(negZero)))
	assert.True(t, Same(float32(math.NaN()), float32(math.NaN())))
}

func TestSame_Basic(t *testing.T) {
	assert.True(t, Same(1, 1))
	assert.False(t, Same(1, 2))
	assert.True(t, Same("a", "a"))
	assert.False(t, Same(true, false))
	assert.True(t, Same(uint8(3), uint8(3)))
	assert.True(t, Same(complex(math.NaN(), 1), complex(math.NaN(), 1)))
}

func TestSame_References(t *testing.T) {
	a := []int{1, 2}
	b := []int{1, 2}
	assert.True(t, Same(a, a))
	assert.False(t, Same(a, b), "Slices with equal content are different references")
	assert.False(t, Same(a, a[:1]))
	assert.True(t, Same[[]int](nil, nil))
	assert.False(t, Same(nil, []int{}))

	m := map[string]int{"a": 1}
	assert.True(t, Same(m, m))
	assert.False(t, Same(m, map[string]int{"a": 1}))

	x, y := 1, 1
	assert.True(t, Same(&x, &x))
	assert.False(t, Same(&x, &y))

	fn := func() {}
	assert.False(t, Same(fn, fn), "Functions have no reliable identity")
	assert.True(t, Same[func()](nil, nil))
}

func TestSame_Composite(t *testing.T) {
	type point struct {
		X, Y float64
		tags []string
	}
	tags := []string{"a"}
	assert.True(t, Same(point{1, 2, tags}, point{1, 2, tags}))
	assert.False(t, Same(point{1, 2, tags}, point{1, 2, []string{"a"}}))
	assert.False(t, Same(point{X: 0}, point{X: math.Copysign(0, -1)}))
	assert.True(t, Same([2]float64{math.NaN(), 1}, [2]float64{math.NaN(), 1}))
}

func TestSame_Interfaces(t *testing.T) {
	assert.True(t, Same[any](nil, nil))
	assert.False(t, Same[any](nil, 1))
	assert.True(t, Same[any](math.NaN(), math.NaN()))
	assert.False(t, Same[any](1, int64(1)), "Different dynamic types are different")
	assert.False(t, Same[any](0.0, math.Copysign(0, -1)))
}
