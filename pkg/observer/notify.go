package observer

// Notify0 calls op on every listener n holds.
//
// The Notify helpers take a method expression of the listener interface, so
// the argument list is checked against the method signature at compile time:
//
//	observer.Notify2(mouse, MouseListener.OnLeftMouseButton, 25, 48)
func Notify0[L any](n Notifier[L], op func(L)) {
	n.Notify(op)
}

// Notify1 calls op(l, a) on every listener l that n holds.
func Notify1[L, A any](n Notifier[L], op func(L, A), a A) {
	n.Notify(func(l L) { op(l, a) })
}

// Notify2 calls op(l, a, b) on every listener l that n holds.
func Notify2[L, A, B any](n Notifier[L], op func(L, A, B), a A, b B) {
	n.Notify(func(l L) { op(l, a, b) })
}

// Notify3 calls op(l, a, b, c) on every listener l that n holds.
func Notify3[L, A, B, C any](n Notifier[L], op func(L, A, B, C), a A, b B, c C) {
	n.Notify(func(l L) { op(l, a, b, c) })
}
