// Package observer lets event sources broadcast typed notifications to
// listeners that implement any mix of listener interfaces, without writing
// attach/detach/notify plumbing per interface.
//
// A listener interface is an ordinary Go interface:
//
//	type MouseListener interface{ OnLeftMouseButton(x, y int) }
//	type KeyboardListener interface{ OnKeyPressed(code int) }
//
// A source embeds *Source and calls Provide once per interface it emits:
//
//	type Window struct {
//		*observer.Source
//		mouse *observer.Emitter[MouseListener]
//	}
//
//	func NewWindow() *Window {
//		src := observer.NewRawSource()
//		return &Window{Source: src, mouse: observer.Provide[MouseListener](src)}
//	}
//
//	func (w *Window) click(x, y int) {
//		observer.Notify2(w.mouse, MouseListener.OnLeftMouseButton, x, y)
//	}
//
// Attach routes a listener to the containers of every interface that both
// sides have in common; the rest is ignored silently. A listener may pin its
// interface set explicitly by implementing Declarer.
//
// Storage strategies:
//
//   - Raw: containers hold the listener values. Callers detach listeners
//     before dropping them. A Shared or WeakPtr handle is unwrapped to the
//     value it refers to.
//   - Weak: containers hold non-owning references obtained from a Shared
//     handle or MakeWeak. Destroyed listeners are skipped when notifying and
//     purged lazily by Detach.
//
// Listener identity is value identity, so listeners should be pointers.
// Listeners of non-comparable dynamic types, or holding non-comparable values
// in interface fields, can be attached but never match on Detach. MakeWeak needs a pointer to a non-zero-sized value.
//
// Nothing in this package is safe for concurrent use; callers sharing a
// Source between goroutines must serialize access to it. Contract violations
// (nil listeners, expired or non-weak handles) panic with the errors
// declared in errors.go.
package observer
