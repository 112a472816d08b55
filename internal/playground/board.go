// Package playground keeps a fixed set of demo sources alive behind a mutex
// so they can be driven from concurrent callers such as HTTP handlers.
package playground

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"observerkit/internal/demo"
	"observerkit/pkg/observer"
	"observerkit/pkg/types"
)

// Options configures a Board. Zero values are usable: a disabled logger, no
// metrics registration and an unbounded event history.
type Options struct {
	Logger   zerolog.Logger
	Registry prometheus.Registerer
	History  int
}

type entry struct {
	src      *observer.Source
	mouse    demo.MouseSource
	keys     demo.KeyboardSource // nil when the source emits no keyboard events
	release  func()
	released bool
}

// Board owns the demo sources and the listeners attached to them: a
// recorder, a metrics observer and a log observer. The observer package is
// not safe for concurrent use, so every method takes the board lock.
type Board struct {
	mu      sync.Mutex
	log     zerolog.Logger
	order   []string
	sources map[string]*entry
	rec     *demo.Recorder
}

// New builds a board with the mouse-and-keyboard, mouse-only and
// smart-mouse-only sources.
func New(opts Options) (*Board, error) {
	metrics, err := demo.NewMetricsObserver(opts.Registry)
	if err != nil {
		return nil, err
	}
	b := &Board{
		log:     opts.Logger.With().Str("component", "playground").Logger(),
		sources: make(map[string]*entry),
		rec:     demo.NewRecorder(opts.History),
	}
	taps := []demo.Tap{b.rec, metrics, demo.NewLogObserver(opts.Logger)}
	srcOpts := func(name string) []observer.Option {
		return []observer.Option{observer.WithName(name), observer.WithLogger(opts.Logger)}
	}

	mk := demo.NewMouseAndKeyboardSource(nil, srcOpts("mouse-and-keyboard")...)
	b.add("mouse-and-keyboard", mk.Source, mk, mk, taps)
	mo := demo.NewMouseOnlySource(nil, srcOpts("mouse-only")...)
	b.add("mouse-only", mo.Source, mo, nil, taps)
	sm := demo.NewSmartMouseOnlySource(nil, srcOpts("smart-mouse-only")...)
	b.add("smart-mouse-only", sm.Source, sm, nil, taps)
	return b, nil
}

func (b *Board) add(name string, src *observer.Source, mouse demo.MouseSource, keys demo.KeyboardSource, taps []demo.Tap) {
	b.order = append(b.order, name)
	b.sources[name] = &entry{
		src:     src,
		mouse:   mouse,
		keys:    keys,
		release: demo.AttachTaps(src, taps),
	}
}

func (b *Board) lookup(name string) (*entry, error) {
	e, ok := b.sources[name]
	if !ok {
		return nil, unknownSourceError{name: name}
	}
	return e, nil
}

// Sources describes every source in creation order.
func (b *Board) Sources() []types.SourceInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]types.SourceInfo, 0, len(b.order))
	for _, name := range b.order {
		e := b.sources[name]
		info := types.SourceInfo{
			Name:      name,
			Strategy:  e.src.Strategy().String(),
			Listeners: make(map[string]int),
			Released:  e.released,
		}
		for _, i := range e.src.Interfaces() {
			info.Interfaces = append(info.Interfaces, i.String())
			info.Listeners[i.String()] = e.src.Len(i)
		}
		out = append(out, info)
	}
	return out
}

// Mouse emits a left mouse button event at (x, y) from the named source.
func (b *Board) Mouse(name string, x, y int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.lookup(name)
	if err != nil {
		return err
	}
	b.log.Debug().Str("source", name).Int("x", x).Int("y", y).Msg("emit mouse")
	e.mouse.LeftMouseButton(x, y)
	return nil
}

// Key emits a key press event from the named source.
func (b *Board) Key(name string, code int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.lookup(name)
	if err != nil {
		return err
	}
	if e.keys == nil {
		return unsupportedEventError{source: name, event: "keyboard"}
	}
	b.log.Debug().Str("source", name).Int("code", code).Msg("emit key")
	e.keys.KeyPressed(code)
	return nil
}

// Release drops the board's ownership of the listeners attached to a weak
// source. Afterwards that source delivers to no one. It reports whether
// anything was released; raw sources and repeated calls report false.
func (b *Board) Release(name string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.lookup(name)
	if err != nil {
		return false, err
	}
	if e.released || e.src.Strategy() != observer.Weak {
		return false, nil
	}
	e.release()
	e.released = true
	b.log.Info().Str("source", name).Msg("listeners released")
	return true, nil
}

// Events returns the deliveries recorded so far, oldest first.
func (b *Board) Events() []types.Delivery {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rec.Deliveries()
}
