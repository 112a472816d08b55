package observer

import (
	"errors"
	"fmt"
	"testing"
)

type mouseListener interface {
	OnLeftMouseButton(x, y int)
}

type keyboardListener interface {
	OnKeyPressed(code int)
}

type wheelListener interface {
	OnWheel(delta int)
}

// journal records deliveries across listeners in call order.
type journal struct {
	lines []string
}

func (j *journal) add(format string, a ...any) { j.lines = append(j.lines, fmt.Sprintf(format, a...)) }

type mouseOnly struct {
	name string
	j    *journal
}

func (m *mouseOnly) OnLeftMouseButton(x, y int) { m.j.add("%s mouse %d %d", m.name, x, y) }

type mouseAndKeyboard struct {
	name string
	j    *journal
}

func (m *mouseAndKeyboard) OnLeftMouseButton(x, y int) { m.j.add("%s mouse %d %d", m.name, x, y) }
func (m *mouseAndKeyboard) OnKeyPressed(code int)      { m.j.add("%s key %d", m.name, code) }

// declaredMouse has a keyboard method but only declares MouseListener.
type declaredMouse struct {
	mouseAndKeyboard
}

func (d *declaredMouse) ListenerInterfaces() []Iface {
	return Implements(IfaceOf[mouseListener]())
}

// lyingListener declares an interface it does not implement.
type lyingListener struct {
	mouseOnly
}

func (l *lyingListener) ListenerInterfaces() []Iface {
	return Implements(IfaceOf[mouseListener](), IfaceOf[keyboardListener]())
}

func equalLines(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d lines %q", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q (all: %q)", i, got[i], want[i], got)
		}
	}
}

// mustPanicWith runs fn and checks that it panics with an error matching target.
func mustPanicWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic value %v, want %v", r, target)
		}
	}()
	fn()
}
