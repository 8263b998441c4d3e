package observer

import (
	"context"
	"fmt"

	"github.com/aretw0/cadence/pkg/domain"
)

// Entry pairs an observer with the name it is registered under.
type Entry struct {
	Name     string
	Observer Observer
}

// Named builds an Entry.
func Named(name string, o Observer) Entry {
	return Entry{Name: name, Observer: o}
}

// Dispatcher fans each lifecycle hook out to its observers in declaration order.
// Membership is fixed at construction.
type Dispatcher struct {
	entries []Entry
	index   map[string]int
}

var _ Observer = (*Dispatcher)(nil)

// New builds a Dispatcher from the given entries, in order.
// Names must be non-empty and unique, observers non-nil.
func New(entries ...Entry) (*Dispatcher, error) {
	d := &Dispatcher{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.Name == "" || e.Observer == nil {
			return nil, fmt.Errorf("entry %d: %w", i, ErrInvalidEntry)
		}
		if _, dup := d.index[e.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		d.index[e.Name] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	return d, nil
}

// Len returns the number of observers.
func (d *Dispatcher) Len() int { return len(d.entries) }

// Names returns the observer names in dispatch order.
func (d *Dispatcher) Names() []string {
	names := make([]string, len(d.entries))
	for i, e := range d.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the observer registered under name.
func (d *Dispatcher) Lookup(name string) (Observer, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.entries[i].Observer, true
}

// Dispatch invokes hook h on every observer in order. The first error stops
// the invocation and is returned as a *HookError; observers that already ran
// keep their writes to s.
func (d *Dispatcher) Dispatch(ctx context.Context, h domain.Hook, s *domain.RunState) error {
	fn, ok := hookMethods[h]
	if !ok {
		return fmt.Errorf("unknown hook %q", h)
	}
	for _, e := range d.entries {
		if err := fn(e.Observer, ctx, s); err != nil {
			return &HookError{Observer: e.Name, Hook: h, Err: err}
		}
	}
	return nil
}

func (d *Dispatcher) OnTrainStart(ctx context.Context, s *domain.RunState) error {
	return d.Dispatch(ctx, domain.HookTrainStart, s)
}

func (d *Dispatcher) OnTrainEnd(ctx context.Context, s *domain.RunState) error {
	return d.Dispatch(ctx, domain.HookTrainEnd, s)
}

func (d *Dispatcher) OnInferStart(ctx context.Context, s *domain.RunState) error {
	return d.Dispatch(ctx, domain.HookInferStart, s)
}

func (d *Dispatcher) OnInferEnd(ctx context.Context, s *domain.RunState) error {
	return d.Dispatch(ctx, domain.HookInferEnd, s)
}

func (d *Dispatcher) OnEpochStart(ctx context.Context, s *domain.RunState) error {
	return d.Dispatch(ctx, domain.HookEpochStart, s)
}

func (d *Dispatcher) OnEpochEnd(ctx context.Context, s *domain.RunState) error {
	return d.Dispatch(ctx, domain.HookEpochEnd, s)
}

func (d *Dispatcher) OnLoaderStart(ctx context.Context, s *domain.RunState) error {
	return d.Dispatch(ctx, domain.HookLoaderStart, s)
}

func (d *Dispatcher) OnLoaderEnd(ctx context.Context, s *domain.RunState) error {
	return d.Dispatch(ctx, domain.HookLoaderEnd, s)
}

func (d *Dispatcher) OnBatchStart(ctx context.Context, s *domain.RunState) error {
	return d.Dispatch(ctx, domain.HookBatchStart, s)
}

func (d *Dispatcher) OnBatchEnd(ctx context.Context, s *domain.RunState) error {
	return d.Dispatch(ctx, domain.HookBatchEnd, s)
}
