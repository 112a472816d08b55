package observer

import (
	"reflect"
	"slices"
)

// Notifier broadcasts a call to every registered listener of type L.
type Notifier[L any] interface {
	Notify(fn func(L))
}

// RawContainer holds direct references to listeners of one interface type.
// The zero value is ready to use.
type RawContainer[L any] struct {
	listeners []L
}

// Attach registers l. Attaching the same listener twice registers it twice.
// It panics with ErrNilListener if l is nil.
func (c *RawContainer[L]) Attach(l L) {
	if isNil(l) {
		panic(ErrNilListener)
	}
	c.listeners = append(c.listeners, l)
}

// Detach removes every registration of l. Unknown listeners are ignored.
func (c *RawContainer[L]) Detach(l L) { c.detach(l) }

func (c *RawContainer[L]) detach(target any) {
	// Copy before deleting so a Notify in progress keeps its snapshot.
	c.listeners = slices.DeleteFunc(slices.Clone(c.listeners), func(l L) bool {
		return same(l, target)
	})
}

// Notify calls fn for each registered listener in registration order.
// A panic raised by fn is not recovered and stops delivery.
func (c *RawContainer[L]) Notify(fn func(L)) {
	for _, l := range c.listeners {
		fn(l)
	}
}

// Len returns the number of registrations.
func (c *RawContainer[L]) Len() int { return len(c.listeners) }

// WeakRef is a non-owning reference to a listener. Lock reports false once
// the listener has been destroyed.
type WeakRef[L any] interface {
	Lock() (L, bool)
}

// WeakContainer holds weak references to listeners of one interface type.
// Destroyed listeners are skipped by Notify and purged by Detach.
// The zero value is ready to use.
type WeakContainer[L any] struct {
	refs []WeakRef[L]
}

// Attach registers r. It panics with ErrNilListener if r is nil and with
// ErrExpired if r no longer refers to a live listener.
func (c *WeakContainer[L]) Attach(r WeakRef[L]) {
	if isNil(r) {
		panic(ErrNilListener)
	}
	if _, ok := r.Lock(); !ok {
		panic(ErrExpired)
	}
	c.refs = append(c.refs, r)
}

// Detach removes every registration of the listener behind r, together with
// every registration whose listener has already been destroyed.
func (c *WeakContainer[L]) Detach(r WeakRef[L]) {
	var target any
	if !isNil(r) {
		if l, ok := r.Lock(); ok {
			target = l
		}
	}
	c.detach(target)
}

func (c *WeakContainer[L]) detach(target any) {
	c.refs = slices.DeleteFunc(slices.Clone(c.refs), func(r WeakRef[L]) bool {
		l, ok := r.Lock()
		return !ok || same(l, target)
	})
}

// Notify calls fn for each live listener in registration order.
// A panic raised by fn is not recovered and stops delivery.
func (c *WeakContainer[L]) Notify(fn func(L)) {
	for _, r := range c.refs {
		if l, ok := r.Lock(); ok {
			fn(l)
		}
	}
}

// Len returns the number of registrations, including expired ones that have
// not been purged yet.
func (c *WeakContainer[L]) Len() int { return len(c.refs) }

// Live returns the number of registrations whose listener is still alive.
func (c *WeakContainer[L]) Live() int {
	n := 0
	for _, r := range c.refs {
		if _, ok := r.Lock(); ok {
			n++
		}
	}
	return n
}

// lockView adapts a type-erased lock function to WeakRef[L].
type lockView[L any] struct {
	lock func() (any, bool)
}

func (v lockView[L]) Lock() (L, bool) {
	var zero L
	x, ok := v.lock()
	if !ok {
		return zero, false
	}
	l, ok := x.(L)
	return l, ok
}

// isNil reports whether v is nil or a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// same reports whether a and b denote the same listener. Values of
// non-comparable dynamic types never match, including comparable types
// that hold a non-comparable value in an interface field.
func same(a, b any) (eq bool) {
	if a == nil || b == nil {
		return false
	}
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
