package types

import "time"

// SourceInfo describes one event source and its registrations.
type SourceInfo struct {
	// Stable name of the source.
	// example: mouse-and-keyboard
	Name string `json:"name"`
	// Storage strategy: raw or weak.
	Strategy string `json:"strategy"`
	// Listener interfaces the source emits, in the order they were provided.
	// example: ["demo.MouseListener","demo.KeyboardListener"]
	Interfaces []string `json:"interfaces"`
	// Registrations per interface, including expired weak ones not yet purged.
	Listeners map[string]int `json:"listeners"`
	// True once the listeners of a weak source have been released.
	Released bool `json:"released,omitempty"`
}

// Delivery is one notification received by a recording listener.
type Delivery struct {
	// Listener interface the notification belongs to.
	// example: MouseListener
	Interface string `json:"interface"`
	// Operation invoked on the listener.
	// example: OnLeftMouseButton
	Operation string `json:"operation"`
	// Arguments forwarded to the operation.
	// example: [25,48]
	Args []int `json:"args"`
	// Time the listener received the notification.
	At time.Time `json:"at"`
}
