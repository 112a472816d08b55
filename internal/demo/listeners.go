package demo

import (
	"fmt"
	"io"

	"observerkit/pkg/observer"
)

// MouseListener receives mouse button notifications.
type MouseListener interface {
	OnLeftMouseButton(x, y int)
}

// KeyboardListener receives key press notifications.
type KeyboardListener interface {
	OnKeyPressed(code int)
}

var (
	mouseIface    = observer.IfaceOf[MouseListener]()
	keyboardIface = observer.IfaceOf[KeyboardListener]()
)

// MouseOnlyObserver prints mouse notifications to Out.
type MouseOnlyObserver struct {
	Out io.Writer
}

func (o *MouseOnlyObserver) ListenerInterfaces() []observer.Iface {
	return observer.Implements(mouseIface)
}

func (o *MouseOnlyObserver) OnLeftMouseButton(x, y int) {
	fmt.Fprintf(o.Out, " - MouseOnlyObserver.OnLeftMouseButton(%d, %d) received\n", x, y)
}

// MouseAndKeyboardObserver prints mouse and keyboard notifications to Out.
type MouseAndKeyboardObserver struct {
	Out io.Writer
}

func (o *MouseAndKeyboardObserver) ListenerInterfaces() []observer.Iface {
	return observer.Implements(mouseIface, keyboardIface)
}

func (o *MouseAndKeyboardObserver) OnLeftMouseButton(x, y int) {
	fmt.Fprintf(o.Out, " - MouseAndKeyboardObserver.OnLeftMouseButton(%d, %d) received\n", x, y)
}

func (o *MouseAndKeyboardObserver) OnKeyPressed(code int) {
	fmt.Fprintf(o.Out, " - MouseAndKeyboardObserver.OnKeyPressed(%d) received\n", code)
}
