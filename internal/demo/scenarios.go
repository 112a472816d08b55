package demo

import (
	"fmt"
	"io"

	"observerkit/pkg/observer"
)

// Tap is an extra listener attached to every scenario source next to the
// scenario's own observers.
type Tap interface {
	MouseListener
	KeyboardListener
}

// RunOptions customizes how scenarios build their sources.
type RunOptions struct {
	Source []observer.Option
	Taps   []Tap
}

func (o RunOptions) sourceOptions(name string) []observer.Option {
	return append([]observer.Option{observer.WithName(name)}, o.Source...)
}

// Scenario is one self-contained demonstration.
type Scenario struct {
	Name  string
	Title string
	run   func(w io.Writer, opts RunOptions)
}

// Run executes the scenario, writing its transcript to w.
func (s Scenario) Run(w io.Writer, opts RunOptions) {
	fmt.Fprintln(w, s.Title)
	s.run(w, opts)
}

var scenarios = []Scenario{
	{Name: "mouse-and-keyboard", Title: "Mouse and keyboard test", run: runMouseAndKeyboard},
	{Name: "mouse-only", Title: "Mouse only test", run: runMouseOnly},
	{Name: "smart-mouse-only", Title: "Smart mouse only test", run: runSmartMouseOnly},
}

// Scenarios returns the registered scenarios in execution order.
func Scenarios() []Scenario { return append([]Scenario(nil), scenarios...) }

// Lookup returns the scenario called name.
func Lookup(name string) (Scenario, error) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, unknownScenarioError{name: name}
}

// Run executes the named scenarios in order, separated by blank lines.
// With no names every scenario runs. Names are validated before anything runs.
func Run(w io.Writer, names []string, opts RunOptions) error {
	selected := Scenarios()
	if len(names) > 0 {
		selected = selected[:0]
		for _, n := range names {
			s, err := Lookup(n)
			if err != nil {
				return err
			}
			selected = append(selected, s)
		}
	}
	for i, s := range selected {
		if i > 0 {
			fmt.Fprintln(w)
		}
		s.Run(w, opts)
	}
	return nil
}

// tapBox gives a Tap a concrete pointer type so a weak source can own it
// through a Shared handle.
type tapBox struct {
	Tap
}

// AttachTaps attaches taps to src and returns a func releasing any handles
// created for weak sources.
func AttachTaps(src *observer.Source, taps []Tap) (release func()) {
	var handles []*observer.Shared[tapBox]
	for _, t := range taps {
		if src.Strategy() == observer.Weak {
			h := observer.NewShared(&tapBox{Tap: t})
			src.Attach(h)
			handles = append(handles, h)
			continue
		}
		src.Attach(t)
	}
	return func() {
		for _, h := range handles {
			h.Release()
		}
	}
}

func runMouseAndKeyboard(w io.Writer, opts RunOptions) {
	src := NewMouseAndKeyboardSource(w, opts.sourceOptions("mouse-and-keyboard")...)
	defer AttachTaps(src.Source, opts.Taps)()

	src.Attach(&MouseOnlyObserver{Out: w})
	src.Attach(&MouseAndKeyboardObserver{Out: w})
	src.Test()
}

func runMouseOnly(w io.Writer, opts RunOptions) {
	src := NewMouseOnlySource(w, opts.sourceOptions("mouse-only")...)
	defer AttachTaps(src.Source, opts.Taps)()

	src.Attach(&MouseOnlyObserver{Out: w})
	// Only the mouse half of this observer is wired up.
	src.Attach(&MouseAndKeyboardObserver{Out: w})
	src.Test()
}

func runSmartMouseOnly(w io.Writer, opts RunOptions) {
	src := NewSmartMouseOnlySource(w, opts.sourceOptions("smart-mouse-only")...)
	defer AttachTaps(src.Source, opts.Taps)()

	listener := observer.NewShared(&MouseOnlyObserver{Out: w})
	src.Attach(listener)
	src.Test()
	// Dropping the only owner is enough; no Detach needed.
	listener.Release()
	src.Test()
}
