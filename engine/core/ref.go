package core

import "sync/atomic"

// Ref is a reference-counted handle to a GPU resource. The release func runs
// once, when the last holder calls Release. Cloning never duplicates the
// underlying object.
//
// Each Ref variable is one holder: Release detaches it, so releasing the same
// variable again is a no-op and cannot drop another holder's reference.
type Ref[T any] struct {
	shared *refState[T]
}

type refState[T any] struct {
	value   T
	count   atomic.Int32
	release func(T)
}

// NewRef wraps v with a count of one.
func NewRef[T any](v T, release func(T)) Ref[T] {
	s := &refState[T]{value: v, release: release}
	s.count.Store(1)
	return Ref[T]{shared: s}
}

// Get returns the wrapped value. It panics on a zero or released Ref.
func (r Ref[T]) Get() T {
	if r.shared == nil || r.shared.count.Load() <= 0 {
		panic("core: use of released resource")
	}
	return r.shared.value
}

// Clone registers a new holder.
func (r Ref[T]) Clone() Ref[T] {
	if r.shared == nil {
		return r
	}
	r.shared.count.Add(1)
	return r
}

// Release drops this holder and detaches r from the resource.
func (r *Ref[T]) Release() {
	s := r.shared
	if s == nil {
		return
	}
	r.shared = nil
	if n := s.count.Add(-1); n == 0 && s.release != nil {
		s.release(s.value)
	}
}

// Valid reports whether the Ref still has holders.
func (r Ref[T]) Valid() bool { return r.shared != nil && r.shared.count.Load() > 0 }

// Holders reports the live holder count.
func (r Ref[T]) Holders() int {
	if r.shared == nil {
		return 0
	}
	return int(r.shared.count.Load())
}
