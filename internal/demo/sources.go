package demo

import (
	"fmt"
	"io"

	"observerkit/pkg/observer"
)

// MouseSource is implemented by sources that emit mouse events.
type MouseSource interface {
	LeftMouseButton(x, y int)
}

// KeyboardSource is implemented by sources that emit keyboard events.
type KeyboardSource interface {
	KeyPressed(code int)
}

// announce prints the notification header shown before each broadcast.
func announce(w io.Writer, op string) {
	if w != nil {
		fmt.Fprintf(w, "notification %s\n", op)
	}
}

// MouseAndKeyboardSource emits mouse and keyboard events to raw listeners.
type MouseAndKeyboardSource struct {
	*observer.Source
	out   io.Writer
	mouse *observer.Emitter[MouseListener]
	keys  *observer.Emitter[KeyboardListener]
}

func NewMouseAndKeyboardSource(out io.Writer, opts ...observer.Option) *MouseAndKeyboardSource {
	src := observer.NewRawSource(opts...)
	return &MouseAndKeyboardSource{
		Source: src,
		out:    out,
		mouse:  observer.Provide[MouseListener](src),
		keys:   observer.Provide[KeyboardListener](src),
	}
}

func (s *MouseAndKeyboardSource) LeftMouseButton(x, y int) {
	announce(s.out, "MouseListener.OnLeftMouseButton")
	observer.Notify2(s.mouse, MouseListener.OnLeftMouseButton, x, y)
}

func (s *MouseAndKeyboardSource) KeyPressed(code int) {
	announce(s.out, "KeyboardListener.OnKeyPressed")
	observer.Notify1(s.keys, KeyboardListener.OnKeyPressed, code)
}

// Test emits the fixed event sequence of the mouse-and-keyboard scenario.
func (s *MouseAndKeyboardSource) Test() {
	s.LeftMouseButton(25, 48)
	s.KeyPressed(65)
}

// MouseOnlySource emits mouse events to raw listeners.
type MouseOnlySource struct {
	*observer.Source
	out   io.Writer
	mouse *observer.Emitter[MouseListener]
}

func NewMouseOnlySource(out io.Writer, opts ...observer.Option) *MouseOnlySource {
	src := observer.NewRawSource(opts...)
	return &MouseOnlySource{Source: src, out: out, mouse: observer.Provide[MouseListener](src)}
}

func (s *MouseOnlySource) LeftMouseButton(x, y int) {
	announce(s.out, "MouseListener.OnLeftMouseButton")
	observer.Notify2(s.mouse, MouseListener.OnLeftMouseButton, x, y)
}

func (s *MouseOnlySource) Test() { s.LeftMouseButton(95, 105) }

// SmartMouseOnlySource emits mouse events to weakly referenced listeners.
type SmartMouseOnlySource struct {
	*observer.Source
	out   io.Writer
	mouse *observer.Emitter[MouseListener]
}

func NewSmartMouseOnlySource(out io.Writer, opts ...observer.Option) *SmartMouseOnlySource {
	src := observer.NewWeakSource(opts...)
	return &SmartMouseOnlySource{Source: src, out: out, mouse: observer.Provide[MouseListener](src)}
}

func (s *SmartMouseOnlySource) LeftMouseButton(x, y int) {
	announce(s.out, "MouseListener.OnLeftMouseButton")
	observer.Notify2(s.mouse, MouseListener.OnLeftMouseButton, x, y)
}

func (s *SmartMouseOnlySource) Test() { s.LeftMouseButton(27, 163) }
