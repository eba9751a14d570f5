// Package binding provides a small two-way binding cell: a mutable value
// whose storage is owned either by the host application or by the component
// using it. Downstream code talks to a Cell through Get and Set and never
// needs to know which side owns the storage.
package binding

// Cell is a readable, writable value reference.
//
// Every constructor in this package returns a pointer type, so comparing two
// Cell interface values with == compares cell identity. Consumers rely on
// that to detect rebinding across renders.
type Cell[T any] interface {
	Get() T
	Set(T)
}

// Var is a cell that owns its own storage. It supports change listeners.
type Var[T any] struct {
	value     T
	listeners []func(T)
}

// NewVar creates an internally stored cell with the given initial value.
func NewVar[T any](initial T) *Var[T] {
	return &Var[T]{value: initial}
}

// Get returns the current value.
func (v *Var[T]) Get() T { return v.value }

// Set stores a new value and notifies listeners.
func (v *Var[T]) Set(value T) {
	v.value = value
	for _, fn := range v.listeners {
		if fn != nil {
			fn(value)
		}
	}
}

// Subscribe registers a change listener and returns an unsubscribe function.
func (v *Var[T]) Subscribe(fn func(T)) func() {
	v.listeners = append(v.listeners, fn)
	idx := len(v.listeners) - 1
	return func() {
		// Zero out to allow GC, don't reorder.
		v.listeners[idx] = nil
	}
}

type external[T any] struct {
	get func() T
	set func(T)
}

// External wraps host-supplied accessors as a cell. The host owns the
// storage; this package only routes reads and writes through it. A nil set
// function makes the cell read-only (writes are dropped).
func External[T any](get func() T, set func(T)) Cell[T] {
	return &external[T]{get: get, set: set}
}

func (e *external[T]) Get() T { return e.get() }

func (e *external[T]) Set(value T) {
	if e.set != nil {
		e.set(value)
	}
}

type derived[T, U any] struct {
	source Cell[T]
	fn     func(T) U
}

// Derived produces a read-only cell whose value is computed from another
// cell on every read. The write side is a no-op.
func Derived[T, U any](source Cell[T], fn func(T) U) Cell[U] {
	return &derived[T, U]{source: source, fn: fn}
}

func (d *derived[T, U]) Get() U  { return d.fn(d.source.Get()) }
func (d *derived[T, U]) Set(_ U) {}

type discard[T any] struct{}

// Discard returns a cell that drops writes and reads as the zero value.
func Discard[T any]() Cell[T] { return &discard[T]{} }

func (*discard[T]) Get() T { var zero T; return zero }
func (*discard[T]) Set(T) {}
