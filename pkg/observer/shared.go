package observer

import (
	"reflect"
	"weak"
)

// Destroyer is implemented by values that want a hook when the last Shared
// handle owning them is released.
type Destroyer interface {
	Destroy()
}

type control[T any] struct {
	ptr    *T
	strong int
}

// Shared is a reference-counted owner of a *T. Every handle returned by
// NewShared or Clone must be released once; the value is destroyed when the
// last one is. Weak views obtained through Weak report it as expired from
// that point on, regardless of other Go references to the value.
type Shared[T any] struct {
	c        *control[T]
	released bool
}

// NewShared takes ownership of v. It panics with ErrNilListener if v is nil.
func NewShared[T any](v *T) *Shared[T] {
	if v == nil {
		panic(ErrNilListener)
	}
	return &Shared[T]{c: &control[T]{ptr: v, strong: 1}}
}

// Get returns the owned value, or nil if this handle has been released.
func (s *Shared[T]) Get() *T {
	if s == nil || s.released {
		return nil
	}
	return s.c.ptr
}

// Clone returns a new owning handle to the same value.
// It panics with ErrExpired if s has been released.
func (s *Shared[T]) Clone() *Shared[T] {
	if s.Get() == nil {
		panic(ErrExpired)
	}
	s.c.strong++
	return &Shared[T]{c: s.c}
}

// Release gives up this handle's ownership. Releasing twice is a no-op.
func (s *Shared[T]) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	s.c.strong--
	if s.c.strong > 0 {
		return
	}
	p := s.c.ptr
	s.c.ptr = nil
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
}

// UseCount returns the number of live owning handles.
func (s *Shared[T]) UseCount() int {
	if s == nil {
		return 0
	}
	return s.c.strong
}

// Weak returns a non-owning view of the value.
func (s *Shared[T]) Weak() WeakPtr[T] { return WeakPtr[T]{c: s.c} }

func (s *Shared[T]) erase() erasedRef { return s.Weak().erase() }

// WeakPtr is a non-owning view of a *T. It comes either from a Shared handle
// or from MakeWeak, in which case it tracks the garbage collector.
type WeakPtr[T any] struct {
	c  *control[T]
	gc weak.Pointer[T]
}

// MakeWeak returns a view of p that expires once p is garbage collected.
// It panics with ErrNilListener if p is nil.
func MakeWeak[T any](p *T) WeakPtr[T] {
	if p == nil {
		panic(ErrNilListener)
	}
	return WeakPtr[T]{gc: weak.Make(p)}
}

// Lock returns the value, or nil once it has been destroyed.
func (w WeakPtr[T]) Lock() *T {
	if w.c != nil {
		return w.c.ptr
	}
	return w.gc.Value()
}

// Expired reports whether the value has been destroyed.
func (w WeakPtr[T]) Expired() bool { return w.Lock() == nil }

func (w WeakPtr[T]) lockAny() (any, bool) {
	p := w.Lock()
	if p == nil {
		return nil, false
	}
	return p, true
}

func (w WeakPtr[T]) erase() erasedRef {
	return erasedRef{typ: reflect.TypeFor[*T](), lock: w.lockAny}
}

// Bind views w as a WeakRef for listener interface L, for use with a
// WeakContainer. It panics if *T does not implement L.
func Bind[L any, T any](w WeakPtr[T]) WeakRef[L] {
	i := IfaceOf[L]()
	if !i.implementedBy(reflect.TypeFor[*T]()) {
		panic(notImplemented(reflect.TypeFor[*T](), i))
	}
	return lockView[L]{lock: w.lockAny}
}

// weakHandle is implemented by the handle types a weak Source accepts.
type weakHandle interface {
	erase() erasedRef
}

type erasedRef struct {
	typ  reflect.Type
	lock func() (any, bool)
}
