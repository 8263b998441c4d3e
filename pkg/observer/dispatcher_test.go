package observer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logObserver appends "<name>:<hook>" to a shared log for every hook and
// records how many batch metrics it saw at batch end.
type logObserver struct {
	name string
	log  *[]string
	seen *[]int
}

func (o logObserver) record(h domain.Hook) observer.HookFunc {
	return func(_ context.Context, s *domain.RunState) error {
		*o.log = append(*o.log, fmt.Sprintf("%s:%s", o.name, h))
		if h == domain.HookBatchEnd {
			*o.seen = append(*o.seen, s.BatchMetrics.Len())
			s.BatchMetrics.Set(o.name, 1)
		}
		return nil
	}
}

func (o logObserver) funcs() observer.Funcs {
	return observer.Funcs{
		TrainStart:  o.record(domain.HookTrainStart),
		TrainEnd:    o.record(domain.HookTrainEnd),
		InferStart:  o.record(domain.HookInferStart),
		InferEnd:    o.record(domain.HookInferEnd),
		EpochStart:  o.record(domain.HookEpochStart),
		EpochEnd:    o.record(domain.HookEpochEnd),
		LoaderStart: o.record(domain.HookLoaderStart),
		LoaderEnd:   o.record(domain.HookLoaderEnd),
		BatchStart:  o.record(domain.HookBatchStart),
		BatchEnd:    o.record(domain.HookBatchEnd),
	}
}

func TestDispatcher_OrderForEveryHook(t *testing.T) {
	ctx := context.Background()
	var log []string
	var seen []int

	names := []string{"first", "second", "third"}
	entries := make([]observer.Entry, 0, len(names))
	for _, n := range names {
		entries = append(entries, observer.Named(n, logObserver{name: n, log: &log, seen: &seen}.funcs()))
	}
	d, err := observer.New(entries...)
	require.NoError(t, err)

	for _, h := range domain.Hooks() {
		log = log[:0]
		s := domain.NewRunState("run", domain.ModeTrain)
		require.NoError(t, observer.Invoke(ctx, d, h, s))
		assert.Equal(t, []string{
			"first:" + string(h),
			"second:" + string(h),
			"third:" + string(h),
		}, log)
	}

	// Each observer saw the writes of the ones before it.
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestDispatcher_NamesAndLookup(t *testing.T) {
	a, b := observer.Base{}, observer.NewAccumulator()
	d, err := observer.New(observer.Named("b", b), observer.Named("a", a))
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, d.Names())
	assert.Equal(t, 2, d.Len())

	got, ok := d.Lookup("b")
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = d.Lookup("missing")
	assert.False(t, ok)
}

func TestDispatcher_RejectsInvalidEntries(t *testing.T) {
	_, err := observer.New(observer.Named("x", observer.Base{}), observer.Named("x", observer.Base{}))
	assert.ErrorIs(t, err, observer.ErrDuplicateName)

	_, err = observer.New(observer.Named("", observer.Base{}))
	assert.ErrorIs(t, err, observer.ErrInvalidEntry)

	_, err = observer.New(observer.Named("nil", nil))
	assert.ErrorIs(t, err, observer.ErrInvalidEntry)
}

func TestDispatcher_StopsAtFirstError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	var ran []string

	mark := func(name string, err error) observer.Funcs {
		return observer.Funcs{BatchEnd: func(_ context.Context, s *domain.RunState) error {
			ran = append(ran, name)
			if err != nil {
				return err
			}
			s.BatchMetrics.Set(name, 1)
			return nil
		}}
	}

	d, err := observer.New(
		observer.Named("ok", mark("ok", nil)),
		observer.Named("bad", mark("bad", boom)),
		observer.Named("never", mark("never", nil)),
	)
	require.NoError(t, err)

	s := domain.NewRunState("run", domain.ModeTrain)
	err = d.OnBatchEnd(ctx, s)
	require.Error(t, err)

	assert.ErrorIs(t, err, boom)
	var hookErr *observer.HookError
	require.ErrorAs(t, err, &hookErr)
	assert.Equal(t, "bad", hookErr.Observer)
	assert.Equal(t, domain.HookBatchEnd, hookErr.Hook)

	assert.Equal(t, []string{"ok", "bad"}, ran)
	// Writes made before the failure are not rolled back.
	assert.Equal(t, []string{"ok"}, s.BatchMetrics.Keys())
}

func TestDispatcher_Nests(t *testing.T) {
	ctx := context.Background()
	var log []string
	var seen []int

	inner, err := observer.New(observer.Named("inner", logObserver{name: "inner", log: &log, seen: &seen}.funcs()))
	require.NoError(t, err)
	outer, err := observer.New(
		observer.Named("group", inner),
		observer.Named("outer", logObserver{name: "outer", log: &log, seen: &seen}.funcs()),
	)
	require.NoError(t, err)

	require.NoError(t, outer.OnEpochEnd(ctx, domain.NewRunState("run", domain.ModeTrain)))
	assert.Equal(t, []string{"inner:on_epoch_end", "outer:on_epoch_end"}, log)
}

func TestDispatcher_Empty(t *testing.T) {
	d, err := observer.New()
	require.NoError(t, err)
	for _, h := range domain.Hooks() {
		assert.NoError(t, d.Dispatch(context.Background(), h, domain.NewRunState("run", domain.ModeTrain)))
	}
	assert.Error(t, d.Dispatch(context.Background(), domain.Hook("bogus"), domain.NewRunState("run", domain.ModeTrain)))
}
