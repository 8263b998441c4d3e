package observer

import (
	"context"
	"fmt"

	"github.com/aretw0/cadence/pkg/domain"
)

// Observer reacts to lifecycle transitions by reading and mutating the shared RunState.
// Hooks return nothing but an error; every side effect goes through the state.
type Observer interface {
	OnTrainStart(ctx context.Context, s *domain.RunState) error
	OnTrainEnd(ctx context.Context, s *domain.RunState) error
	OnInferStart(ctx context.Context, s *domain.RunState) error
	OnInferEnd(ctx context.Context, s *domain.RunState) error
	OnEpochStart(ctx context.Context, s *domain.RunState) error
	OnEpochEnd(ctx context.Context, s *domain.RunState) error
	OnLoaderStart(ctx context.Context, s *domain.RunState) error
	OnLoaderEnd(ctx context.Context, s *domain.RunState) error
	OnBatchStart(ctx context.Context, s *domain.RunState) error
	OnBatchEnd(ctx context.Context, s *domain.RunState) error
}

// Base implements every hook as a no-op. Embed it and override the hooks you need.
type Base struct{}

func (Base) OnTrainStart(context.Context, *domain.RunState) error  { return nil }
func (Base) OnTrainEnd(context.Context, *domain.RunState) error    { return nil }
func (Base) OnInferStart(context.Context, *domain.RunState) error  { return nil }
func (Base) OnInferEnd(context.Context, *domain.RunState) error    { return nil }
func (Base) OnEpochStart(context.Context, *domain.RunState) error  { return nil }
func (Base) OnEpochEnd(context.Context, *domain.RunState) error    { return nil }
func (Base) OnLoaderStart(context.Context, *domain.RunState) error { return nil }
func (Base) OnLoaderEnd(context.Context, *domain.RunState) error   { return nil }
func (Base) OnBatchStart(context.Context, *domain.RunState) error  { return nil }
func (Base) OnBatchEnd(context.Context, *domain.RunState) error    { return nil }

var _ Observer = Base{}

// HookFunc is the signature shared by every lifecycle hook.
type HookFunc func(ctx context.Context, s *domain.RunState) error

// Funcs adapts a set of optional functions to the Observer interface.
// A nil field is a no-op.
type Funcs struct {
	TrainStart  HookFunc
	TrainEnd    HookFunc
	InferStart  HookFunc
	InferEnd    HookFunc
	EpochStart  HookFunc
	EpochEnd    HookFunc
	LoaderStart HookFunc
	LoaderEnd   HookFunc
	BatchStart  HookFunc
	BatchEnd    HookFunc
}

var _ Observer = Funcs{}

func call(fn HookFunc, ctx context.Context, s *domain.RunState) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, s)
}

func (f Funcs) OnTrainStart(ctx context.Context, s *domain.RunState) error {
	return call(f.TrainStart, ctx, s)
}
func (f Funcs) OnTrainEnd(ctx context.Context, s *domain.RunState) error {
	return call(f.TrainEnd, ctx, s)
}
func (f Funcs) OnInferStart(ctx context.Context, s *domain.RunState) error {
	return call(f.InferStart, ctx, s)
}
func (f Funcs) OnInferEnd(ctx context.Context, s *domain.RunState) error {
	return call(f.InferEnd, ctx, s)
}
func (f Funcs) OnEpochStart(ctx context.Context, s *domain.RunState) error {
	return call(f.EpochStart, ctx, s)
}
func (f Funcs) OnEpochEnd(ctx context.Context, s *domain.RunState) error {
	return call(f.EpochEnd, ctx, s)
}
func (f Funcs) OnLoaderStart(ctx context.Context, s *domain.RunState) error {
	return call(f.LoaderStart, ctx, s)
}
func (f Funcs) OnLoaderEnd(ctx context.Context, s *domain.RunState) error {
	return call(f.LoaderEnd, ctx, s)
}
func (f Funcs) OnBatchStart(ctx context.Context, s *domain.RunState) error {
	return call(f.BatchStart, ctx, s)
}
func (f Funcs) OnBatchEnd(ctx context.Context, s *domain.RunState) error {
	return call(f.BatchEnd, ctx, s)
}

// Invoke calls the hook h on o.
func Invoke(ctx context.Context, o Observer, h domain.Hook, s *domain.RunState) error {
	fn, ok := hookMethods[h]
	if !ok {
		return fmt.Errorf("unknown hook %q", h)
	}
	return fn(o, ctx, s)
}

var hookMethods = map[domain.Hook]func(Observer, context.Context, *domain.RunState) error{
	domain.HookTrainStart:  Observer.OnTrainStart,
	domain.HookTrainEnd:    Observer.OnTrainEnd,
	domain.HookInferStart:  Observer.OnInferStart,
	domain.HookInferEnd:    Observer.OnInferEnd,
	domain.HookEpochStart:  Observer.OnEpochStart,
	domain.HookEpochEnd:    Observer.OnEpochEnd,
	domain.HookLoaderStart: Observer.OnLoaderStart,
	domain.HookLoaderEnd:   Observer.OnLoaderEnd,
	domain.HookBatchStart:  Observer.OnBatchStart,
	domain.HookBatchEnd:    Observer.OnBatchEnd,
}
