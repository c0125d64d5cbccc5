package set

import (
	"github.com/saylorsolutions/observe/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"slices"
	"sync/atomic"
	"testing"
	"time"
)

func TestObservable_Add(t *testing.T) {
	o := NewObservable[string]()
	var events []Event[string]
	o.OnChange(notify.Func(func(event Event[string]) {
		events = append(events, event)
	}))

	assert.True(t, o.Add("a"))
	assert.False(t, o.Add("a"))
	assert.True(t, o.Has("a"))
	assert.True(t, o.Delete("a"))
	assert.False(t, o.Delete("a"))

	assert.Equal(t, []Event[string]{
		{Type: notify.Add, Key: "a", Value: true},
		{Type: notify.Delete, Key: "a", OldValue: true},
	}, events)
}

func TestObservable_Clear(t *testing.T) {
	o := NewObservable[int]()
	calls := 0
	o.OnChange(notify.Func(func(event Event[int]) {
		calls++
		assert.Equal(t, notify.Clear, event.Type)
	}))
	o.Clear()
	assert.Equal(t, 0, calls)

	o = NewObservable(1, 2)
	o.OnChange(notify.Func(func(event Event[int]) {
		calls++
	}))
	o.Clear()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, o.Len())
	assert.Nil(t, o.Slice())
}

func TestObservable_WaitVariants(t *testing.T) {
	var (
		o       = NewObservable[int]()
		settled atomic.Int32
	)
	o.OnChangeAsync(notify.Async(func(Event[int]) error {
		time.Sleep(10 * time.Millisecond)
		settled.Add(1)
		return nil
	}))
	assert.True(t, o.AddWait(1))
	assert.Equal(t, int32(1), settled.Load())
	assert.False(t, o.AddWait(1))
	assert.True(t, o.DeleteWait(1))
	assert.Equal(t, int32(2), settled.Load())
	o.AddWait(2)
	o.ClearWait()
	assert.Equal(t, int32(4), settled.Load())
}

func TestObservable_Order(t *testing.T) {
	o := NewObservable(3, 1, 2)
	o.Add(1)
	o.Delete(3)
	o.Add(3)
	assert.Equal(t, []int{1, 2, 3}, o.Slice())
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(o.All()))
}

func TestObservable_NaN(t *testing.T) {
	o := NewObservable[float64]()
	assert.True(t, o.Add(math.NaN()))
	assert.False(t, o.Add(math.NaN()), "Every NaN should be the same item")
	assert.True(t, o.Has(math.NaN()))
	assert.Equal(t, 1, o.Len())
	assert.True(t, math.IsNaN(o.Slice()[0]))
	assert.True(t, o.Delete(math.NaN()))
	assert.Zero(t, o.Len())
}

func TestObservable_Algebra(t *testing.T) {
	a := NewObservable(1, 2, 3)
	b := New(3, 4)

	assert.Equal(t, []int{1, 2, 3, 4}, a.Union(NewObservable(3, 4)).Slice())
	assert.Equal(t, []int{3}, a.Intersection(b).Slice())
	assert.Equal(t, []int{1, 2}, a.Difference(b).Slice())
	assert.ElementsMatch(t, []int{1, 2, 4}, a.SymmetricDifference(b).Slice())
	assert.Equal(t, []int{1, 2, 3}, a.Slice())

	assert.True(t, NewObservable(1).IsSubsetOf(a))
	assert.True(t, a.IsSupersetOf(New(1, 2)))
	assert.True(t, a.IsDisjointFrom(New(5)))
	assert.False(t, a.IsDisjointFrom(b))
}

func TestObservable_AlgebraDoesNotNotify(t *testing.T) {
	a := NewObservable(1, 2)
	calls := 0
	a.OnChange(notify.Func(func(Event[int]) {
		calls++
	}))
	result := a.Union(New(3))
	result.Add(4)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, result.ListenerCount())
}

func TestObservable_OnError(t *testing.T) {
	o := NewObservable[string]()
	var errs []error
	o.OnError(func(err error) {
		errs = append(errs, err)
	})
	o.OnChange(func(Event[string]) error {
		return assert.AnError
	})
	o.Add("x")
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], assert.AnError)
	o.Destroy()
	assert.Equal(t, 0, o.ListenerCount())
}
