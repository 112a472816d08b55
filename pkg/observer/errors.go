package observer

import "errors"

// Contract violations. The library panics with these values (possibly
// wrapped) instead of returning them, since each one indicates a
// programming error in the caller. Use errors.Is on a recovered value to
// tell them apart.
var (
	ErrNilListener    = errors.New("observer: nil listener")
	ErrExpired        = errors.New("observer: listener already expired")
	ErrNotWeak        = errors.New("observer: weak source requires a weak handle")
	ErrNotImplemented = errors.New("observer: declared interface not implemented")
)
