package demo

import (
	"sync"
	"time"

	"observerkit/pkg/types"
)

// Recorder keeps the most recent notifications in memory.
type Recorder struct {
	mu     sync.Mutex
	limit  int
	events []types.Delivery
	now    func() time.Time
}

// NewRecorder keeps at most limit deliveries; limit <= 0 keeps everything.
func NewRecorder(limit int) *Recorder { return &Recorder{limit: limit, now: time.Now} }

func (r *Recorder) OnLeftMouseButton(x, y int) {
	r.add("MouseListener", "OnLeftMouseButton", x, y)
}

func (r *Recorder) OnKeyPressed(code int) {
	r.add("KeyboardListener", "OnKeyPressed", code)
}

func (r *Recorder) add(iface, op string, args ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, types.Delivery{Interface: iface, Operation: op, Args: args, At: r.now()})
	if r.limit > 0 && len(r.events) > r.limit {
		r.events = append(r.events[:0:0], r.events[len(r.events)-r.limit:]...)
	}
}

// Deliveries returns a copy of the recorded deliveries, oldest first.
func (r *Recorder) Deliveries() []types.Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Delivery, len(r.events))
	copy(out, r.events)
	return out
}
