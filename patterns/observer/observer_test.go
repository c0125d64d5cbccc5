package observer

import (
	"errors"
	"github.com/saylorsolutions/observe/identity"
	"github.com/saylorsolutions/observe/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubject_Set(t *testing.T) {
	sub := NewSubject(5)
	assert.Equal(t, 5, sub.Get())

	var received []int
	sub.OnChange(func(newVal int) error {
		received = append(received, newVal)
		return nil
	})
	sub.Set(10)
	sub.Set(10)
	sub.Set(15)
	assert.Equal(t, 15, sub.Get())
	assert.Equal(t, []int{10, 15}, received, "Setting the same value should not notify")
}

func TestSubject_Set_SignedZero(t *testing.T) {
	sub := NewSubject(0.0)
	calls := 0
	sub.OnChange(notify.Func(func(float64) {
		calls++
	}))
	sub.Set(math.Copysign(0, -1))
	assert.Equal(t, 1, calls, "Negative zero should be a change from positive zero")
	assert.True(t, math.Signbit(sub.Get()))
}

func TestSubject_Set_NaN(t *testing.T) {
	sub := NewSubject(math.NaN())
	calls := 0
	sub.OnChange(notify.Func(func(float64) {
		calls++
	}))
	sub.Set(math.NaN())
	assert.Equal(t, 0, calls, "NaN should not be a change from NaN")
}

func TestSubject_SetWait(t *testing.T) {
	var (
		sub       = NewSubject("a")
		completed atomic.Int32
	)
	for i := 0; i < 3; i++ {
		sub.OnChangeAsync(notify.Async(func(string) error {
			time.Sleep(20 * time.Millisecond)
			completed.Add(1)
			return nil
		}))
	}
	sub.SetWait("b")
	assert.Equal(t, int32(3), completed.Load(), "SetWait should return after all asynchronous handlers settle")
	assert.Equal(t, "b", sub.Get())
}

func TestSubject_Update(t *testing.T) {
	sub := NewSubject(1)
	var received []int
	sub.OnChange(func(v int) error {
		received = append(received, v)
		return nil
	})
	assert.NoError(t, sub.Update(func(current int) (int, error) {
		return current + 1, nil
	}))
	assert.Equal(t, 2, sub.Get())

	errBad := errors.New("bad input")
	err := sub.Update(func(current int) (int, error) {
		return 100, errBad
	})
	assert.ErrorIs(t, err, notify.ErrTransform)
	assert.ErrorIs(t, err, errBad)
	assert.Equal(t, 2, sub.Get(), "A failed transform should leave the value unchanged")
	assert.Equal(t, []int{2}, received)
}

func TestSubject_UpdateWait(t *testing.T) {
	var (
		sub  = NewSubject(1)
		seen atomic.Int64
	)
	sub.OnChangeAsync(notify.Async(func(v int) error {
		time.Sleep(10 * time.Millisecond)
		seen.Store(int64(v))
		return nil
	}))
	require.NoError(t, sub.UpdateWait(func(current int) (int, error) {
		return current * 10, nil
	}))
	assert.Equal(t, int64(10), seen.Load())
	assert.Equal(t, 10, sub.Get())
}

func TestSubject_Subscribe(t *testing.T) {
	sub := NewSubject("initial")
	var received []string
	subscription := sub.Subscribe(func(v string) error {
		received = append(received, v)
		return nil
	})
	assert.Equal(t, []string{"initial"}, received, "Subscribe should be called with the current value")
	sub.Set("next")
	assert.Equal(t, []string{"initial", "next"}, received)

	subscription.Unsubscribe()
	sub.Set("last")
	assert.Len(t, received, 2)
	assert.Equal(t, 0, sub.ListenerCount())
}

func TestSubject_Subscribe_ChangeDuringFirstCall(t *testing.T) {
	sub := NewSubject("initial")
	var received []string
	sub.Subscribe(func(v string) error {
		received = append(received, v)
		if v == "initial" {
			sub.Set("changed")
		}
		return nil
	})
	assert.Equal(t, []string{"initial", "changed"}, received, "A change made while the first call runs should be delivered")
	assert.Equal(t, "changed", sub.Get())
}

func TestSubject_OnError(t *testing.T) {
	sub := NewSubject(0)
	var errs []error
	sub.OnError(func(err error) {
		errs = append(errs, err)
	})
	sub.Subscribe(func(v int) error {
		return errors.New("handler failed")
	})
	sub.Set(1)
	require.Len(t, errs, 2, "Both the immediate call and the change should report errors")
	assert.ErrorIs(t, errs[0], notify.ErrHandler)
}

func TestSubject_WithComparator(t *testing.T) {
	sub := NewSubject("Hello", WithComparator(strings.EqualFold), WithName[string]("greeting"))
	calls := 0
	sub.OnChange(notify.Func(func(string) {
		calls++
	}))
	sub.Set("HELLO")
	assert.Equal(t, 0, calls)
	assert.Equal(t, "Hello", sub.Get())
	sub.Set("Goodbye")
	assert.Equal(t, 1, calls)
}

func TestMap(t *testing.T) {
	src := NewSubject(1)
	parity := Map(src, func(v int) string {
		if v%2 == 0 {
			return "even"
		}
		return "odd"
	})
	assert.Equal(t, "odd", parity.Get())

	var received []string
	parity.OnChange(func(v string) error {
		received = append(received, v)
		return nil
	})
	src.Set(3)
	assert.Equal(t, "odd", parity.Get())
	assert.Empty(t, received, "Collapsed outputs should not notify downstream")
	src.Set(4)
	assert.Equal(t, []string{"even"}, received)

	parity.Destroy()
	assert.Equal(t, 0, src.ListenerCount(), "Destroying a derived subject should detach it from its source")
	src.Set(5)
	assert.Equal(t, "even", parity.Get())
}

func TestMap_SourceChangesWhileLinking(t *testing.T) {
	src := NewSubject(1)
	calls := 0
	doubled := Map(src, func(v int) int {
		calls++
		if calls == 1 {
			// Changes src before the derived subject is linked to it.
			src.Set(5)
		}
		return v * 2
	})
	assert.Equal(t, 5, src.Get())
	assert.Equal(t, 10, doubled.Get(), "The derived subject should catch up with a change made before it was linked")

	src.Set(6)
	assert.Equal(t, 12, doubled.Get())
}

func TestSubject_NonComparable(t *testing.T) {
	first := []string{"a"}
	sub := NewSubject(first, WithComparator[[]string](identity.Same[[]string]))
	calls := 0
	sub.OnChange(notify.Func(func([]string) {
		calls++
	}))
	sub.Set(first)
	assert.Equal(t, 0, calls)
	sub.Set([]string{"a"})
	assert.Equal(t, 1, calls, "A different slice is a change, even with equal content")
}

func TestSubject_Destroy(t *testing.T) {
	sub := NewSubject(1)
	calls := 0
	sub.OnChange(notify.Func(func(int) {
		calls++
	}))
	sub.Destroy()
	sub.Set(2)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 2, sub.Get(), "A destroyed subject still holds a value")
}
