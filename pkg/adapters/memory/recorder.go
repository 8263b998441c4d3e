package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/aretw0/cadence/pkg/ports"
)

// Call is one recorded hook invocation.
type Call struct {
	Hook   domain.Hook
	Epoch  int
	Loader string
	Step   int
}

// Recorder is an observer that remembers every hook it saw and the latest
// state snapshot. It never mutates the RunState.
// Safe for concurrent use: hooks write while Snapshot and Calls read.
type Recorder struct {
	mu      sync.RWMutex
	calls   []Call
	batches int
	last    ports.Snapshot
	now     func() time.Time
}

var (
	_ observer.Observer = (*Recorder)(nil)
	_ ports.StateSource = (*Recorder)(nil)
)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

func (r *Recorder) record(h domain.Hook, s *domain.RunState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Hook: h, Epoch: s.Epoch, Loader: s.Loader, Step: s.Step})
	if h == domain.HookBatchEnd {
		r.batches++
	}
	r.last = ports.SnapshotOf(s, h, r.batches, r.now())
	return nil
}

// Calls returns a copy of the recorded invocations in order.
func (r *Recorder) Calls() []Call {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Hooks returns only the hook names of the recorded invocations.
func (r *Recorder) Hooks() []domain.Hook {
	calls := r.Calls()
	out := make([]domain.Hook, len(calls))
	for i, c := range calls {
		out[i] = c.Hook
	}
	return out
}

// Snapshot returns the state as of the last recorded hook.
func (r *Recorder) Snapshot() ports.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.batches = 0
	r.last = ports.Snapshot{}
}

func (r *Recorder) OnTrainStart(_ context.Context, s *domain.RunState) error {
	return r.record(domain.HookTrainStart, s)
}
func (r *Recorder) OnTrainEnd(_ context.Context, s *domain.RunState) error {
	return r.record(domain.HookTrainEnd, s)
}
func (r *Recorder) OnInferStart(_ context.Context, s *domain.RunState) error {
	return r.record(domain.HookInferStart, s)
}
func (r *Recorder) OnInferEnd(_ context.Context, s *domain.RunState) error {
	return r.record(domain.HookInferEnd, s)
}
func (r *Recorder) OnEpochStart(_ context.Context, s *domain.RunState) error {
	return r.record(domain.HookEpochStart, s)
}
func (r *Recorder) OnEpochEnd(_ context.Context, s *domain.RunState) error {
	return r.record(domain.HookEpochEnd, s)
}
func (r *Recorder) OnLoaderStart(_ context.Context, s *domain.RunState) error {
	return r.record(domain.HookLoaderStart, s)
}
func (r *Recorder) OnLoaderEnd(_ context.Context, s *domain.RunState) error {
	return r.record(domain.HookLoaderEnd, s)
}
func (r *Recorder) OnBatchStart(_ context.Context, s *domain.RunState) error {
	return r.record(domain.HookBatchStart, s)
}
func (r *Recorder) OnBatchEnd(_ context.Context, s *domain.RunState) error {
	return r.record(domain.HookBatchEnd, s)
}
