package syncx

import "sync"

// LockFunc runs fn while holding mux.
func LockFunc(mux sync.Locker, fn func()) {
	mux.Lock()
	defer mux.Unlock()
	fn()
}

func LockFuncT[T any](mux sync.Locker, fn func() T) T {
	mux.Lock()
	defer mux.Unlock()
	return fn()
}

// LockFuncT2 is the same as [LockFuncT], for functions that also report a second result such as a presence flag.
func LockFuncT2[T, U any](mux sync.Locker, fn func() (T, U)) (T, U) {
	mux.Lock()
	defer mux.Unlock()
	return fn()
}

type RLocker interface {
	RLock()
	RUnlock()
}

func RLockFuncT[T any](mux RLocker, fn func() T) T {
	mux.RLock()
	defer mux.RUnlock()
	return fn()
}

func RLockFuncT2[T, U any](mux RLocker, fn func() (T, U)) (T, U) {
	mux.RLock()
	defer mux.RUnlock()
	return fn()
}
