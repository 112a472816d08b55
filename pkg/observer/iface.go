package observer

import (
	"fmt"
	"reflect"
)

// Iface identifies a listener interface type.
type Iface struct {
	t reflect.Type
}

// IfaceOf returns the identifier of the listener interface L.
// It panics if L is not an interface type.
func IfaceOf[L any]() Iface {
	t := reflect.TypeFor[L]()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("observer: %s is not an interface type", t))
	}
	return Iface{t: t}
}

// Type returns the underlying interface type, or nil for the zero Iface.
func (i Iface) Type() reflect.Type { return i.t }

func (i Iface) String() string {
	if i.t == nil {
		return "<nil>"
	}
	return i.t.String()
}

func (i Iface) implementedBy(t reflect.Type) bool {
	return i.t != nil && t != nil && t.Implements(i.t)
}

// Declarer is implemented by listeners that name the set of listener
// interfaces they take part in. A source routes a Declarer only to the
// declared interfaces it supports, even when the listener's method set would
// satisfy more of them. The set is asked for on every Attach and Detach, so
// it may differ between values of one type; a value should keep answering
// the same set while it is attached. Listeners without the method are routed
// by their method set alone.
type Declarer interface {
	ListenerInterfaces() []Iface
}

// Implements is shorthand for building a Declarer's result.
func Implements(ifaces ...Iface) []Iface { return ifaces }

func notImplemented(t reflect.Type, i Iface) error {
	return fmt.Errorf("%w: %s does not implement %s", ErrNotImplemented, t, i)
}
