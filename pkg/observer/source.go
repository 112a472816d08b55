package observer

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
)

// Strategy selects how a Source's containers reference their listeners.
type Strategy int

const (
	// Raw stores listeners directly; callers manage their lifetime.
	Raw Strategy = iota
	// Weak stores non-owning references; destroyed listeners are skipped.
	Weak
)

func (s Strategy) String() string {
	switch s {
	case Raw:
		return "raw"
	case Weak:
		return "weak"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger used for routing diagnostics (debug level).
func WithLogger(l zerolog.Logger) Option {
	return func(s *Source) { s.log = l }
}

// WithName sets the name reported in log lines.
func WithName(name string) Option {
	return func(s *Source) { s.name = name }
}

// Source composes one container per supported listener interface and routes
// attached listeners to the containers whose interface they implement.
//
// A concrete event source embeds *Source (exposing Attach and Detach) and
// keeps the Emitters returned by Provide unexported, so only it can notify.
// Source is not safe for concurrent use.
type Source struct {
	strategy Strategy
	name     string
	log      zerolog.Logger
	slots    []slot
	byIface  map[reflect.Type]slot
	routes   map[reflect.Type][]slot
}

// NewSource returns a Source with no supported interfaces.
func NewSource(strategy Strategy, opts ...Option) *Source {
	s := &Source{
		strategy: strategy,
		log:      zerolog.Nop(),
		byIface:  make(map[reflect.Type]slot),
		routes:   make(map[reflect.Type][]slot),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRawSource is NewSource(Raw, opts...).
func NewRawSource(opts ...Option) *Source { return NewSource(Raw, opts...) }

// NewWeakSource is NewSource(Weak, opts...).
func NewWeakSource(opts ...Option) *Source { return NewSource(Weak, opts...) }

// Strategy returns the storage strategy of s.
func (s *Source) Strategy() Strategy { return s.strategy }

// Name returns the name set with WithName.
func (s *Source) Name() string { return s.name }

// Provide adds a container for listener interface L to s and returns the
// Emitter that notifies it. Calling Provide again for the same L returns the
// existing Emitter.
func Provide[L any](s *Source) *Emitter[L] {
	i := IfaceOf[L]()
	if sl, ok := s.byIface[i.t]; ok {
		return sl.(interface{ emitter() *Emitter[L] }).emitter()
	}
	var sl slot
	switch s.strategy {
	case Weak:
		c := &WeakContainer[L]{}
		sl = &weakSlot[L]{i: i, c: c, e: &Emitter[L]{i: i, c: c}}
	default:
		c := &RawContainer[L]{}
		sl = &rawSlot[L]{i: i, c: c, e: &Emitter[L]{i: i, c: c}}
	}
	s.slots = append(s.slots, sl)
	s.byIface[i.t] = sl
	clear(s.routes)
	s.log.Debug().Str("source", s.name).Stringer("interface", i).Msg("interface provided")
	return sl.(interface{ emitter() *Emitter[L] }).emitter()
}

// Attach registers x with every container whose interface x implements.
// Interfaces x implements but s does not support are ignored, as are
// interfaces s supports but x does not implement.
//
// For a Raw source x is the listener itself. A *Shared[T] or WeakPtr[T]
// given to a Raw source is unwrapped: the *T it refers to is attached and
// held directly, so releasing the handle does not stop delivery. For a Weak
// source x must be a *Shared[T] or WeakPtr[T] for some listener type T.
//
// Attach panics with ErrNilListener for a nil x, with ErrNotWeak when a Weak
// source is given anything else than a weak handle, and with ErrExpired when
// the handle no longer refers to a live listener.
func (s *Source) Attach(x any) {
	h := s.handleFor(x, true)
	routes := s.route(h)
	for _, sl := range routes {
		sl.attach(h)
	}
	s.log.Debug().Str("source", s.name).Stringer("listener", h.typ).Int("interfaces", len(routes)).Msg("listener attached")
}

// Detach removes x from every container it was routed to. Detaching a
// listener that was never attached is a no-op. On a Weak source, every
// registration whose listener has been destroyed is purged from those
// containers as well.
func (s *Source) Detach(x any) {
	if isNil(x) {
		return
	}
	h := s.handleFor(x, false)
	routes := s.route(h)
	for _, sl := range routes {
		sl.detach(h)
	}
	s.log.Debug().Str("source", s.name).Stringer("listener", h.typ).Int("interfaces", len(routes)).Msg("listener detached")
}

// Supports reports whether s has a container for i.
func (s *Source) Supports(i Iface) bool {
	_, ok := s.byIface[i.t]
	return ok
}

// Interfaces returns the supported interfaces in the order they were provided.
func (s *Source) Interfaces() []Iface {
	out := make([]Iface, 0, len(s.slots))
	for _, sl := range s.slots {
		out = append(out, sl.iface())
	}
	return out
}

// Len returns the number of registrations in the container for i, or 0 if
// s does not support i.
func (s *Source) Len(i Iface) int {
	if sl, ok := s.byIface[i.t]; ok {
		return sl.size()
	}
	return 0
}

// handle is the type-erased form of an Attach/Detach argument.
type handle struct {
	typ   reflect.Type
	value any                // nil when a weak handle has expired
	lock  func() (any, bool) // weak sources only
}

func (s *Source) handleFor(x any, attaching bool) handle {
	if isNil(x) {
		panic(ErrNilListener)
	}
	wh, ok := x.(weakHandle)
	if !ok {
		if s.strategy == Weak {
			panic(fmt.Errorf("%w, got %T", ErrNotWeak, x))
		}
		return handle{typ: reflect.TypeOf(x), value: x}
	}
	r := wh.erase()
	v, live := r.lock()
	if !live && attaching {
		panic(ErrExpired)
	}
	if s.strategy != Weak {
		// Raw containers hold the value itself.
		return handle{typ: r.typ, value: v}
	}
	return handle{typ: r.typ, value: v, lock: r.lock}
}

// route returns the containers a listener of h's dynamic type belongs to.
// Method-set routes are cached per type until the supported set changes.
// Declarers are routed per instance, since their declared set may differ
// between values of the same type.
func (s *Source) route(h handle) []slot {
	d, isDeclarer := h.value.(Declarer)
	if !isDeclarer {
		if r, ok := s.routes[h.typ]; ok {
			return r
		}
	}
	var declared map[reflect.Type]bool
	if isDeclarer {
		declared = make(map[reflect.Type]bool)
		for _, i := range d.ListenerInterfaces() {
			if !i.implementedBy(h.typ) {
				panic(notImplemented(h.typ, i))
			}
			declared[i.t] = true
		}
	}
	var r []slot
	for _, sl := range s.slots {
		i := sl.iface()
		if declared != nil && !declared[i.t] {
			continue
		}
		if i.implementedBy(h.typ) {
			r = append(r, sl)
		}
	}
	// An expired weak handle cannot answer ListenerInterfaces; don't cache
	// the method-set fallback.
	if h.value != nil && !isDeclarer {
		s.routes[h.typ] = r
		s.log.Debug().Str("source", s.name).Stringer("listener", h.typ).Int("interfaces", len(r)).Msg("route built")
	}
	return r
}

// slot is the type-erased view of one container inside a Source.
type slot interface {
	iface() Iface
	attach(h handle)
	detach(h handle)
	size() int
}

type rawSlot[L any] struct {
	i Iface
	c *RawContainer[L]
	e *Emitter[L]
}

func (sl *rawSlot[L]) iface() Iface         { return sl.i }
func (sl *rawSlot[L]) attach(h handle)      { sl.c.Attach(h.value.(L)) }
func (sl *rawSlot[L]) detach(h handle)      { sl.c.detach(h.value) }
func (sl *rawSlot[L]) size() int            { return sl.c.Len() }
func (sl *rawSlot[L]) emitter() *Emitter[L] { return sl.e }

type weakSlot[L any] struct {
	i Iface
	c *WeakContainer[L]
	e *Emitter[L]
}

func (sl *weakSlot[L]) iface() Iface         { return sl.i }
func (sl *weakSlot[L]) attach(h handle)      { sl.c.Attach(lockView[L]{lock: h.lock}) }
func (sl *weakSlot[L]) detach(h handle)      { sl.c.detach(h.value) }
func (sl *weakSlot[L]) size() int            { return sl.c.Len() }
func (sl *weakSlot[L]) emitter() *Emitter[L] { return sl.e }

// Emitter notifies the listeners a Source holds for interface L.
type Emitter[L any] struct {
	i Iface
	c interface {
		Notifier[L]
		Len() int
	}
}

// Notify calls fn for every live listener registered for L, in
// registration order. A panic raised by fn is not recovered and stops
// delivery to the remaining listeners.
func (e *Emitter[L]) Notify(fn func(L)) { e.c.Notify(fn) }

// Len returns the number of registrations for L.
func (e *Emitter[L]) Len() int { return e.c.Len() }

// Interface returns the identifier of L.
func (e *Emitter[L]) Interface() Iface { return e.i }
