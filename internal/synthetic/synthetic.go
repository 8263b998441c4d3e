// Package synthetic generates a deterministic classification workload for demos and tests.
package synthetic

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/runner"
)

// Loader yields batches of random class labels under the "targets" key.
type Loader struct {
	name      string
	batches   int
	batchSize int
	classes   int
	seed      uint64
}

var _ runner.Loader = (*Loader)(nil)

// NewLoader creates a loader of batches x batchSize labels drawn from [0, classes).
// The same arguments always produce the same labels.
func NewLoader(name string, batches, batchSize, classes int, seed int64) *Loader {
	return &Loader{
		name:      name,
		batches:   batches,
		batchSize: batchSize,
		classes:   classes,
		seed:      uint64(seed),
	}
}

func (l *Loader) Name() string { return l.name }

func (l *Loader) Len() int { return l.batches }

func (l *Loader) Batch(_ context.Context, i int) (map[string]any, error) {
	if i < 0 || i >= l.batches {
		return nil, fmt.Errorf("batch %d out of range [0,%d)", i, l.batches)
	}
	rng := rand.New(rand.NewPCG(l.seed, hash(l.name, uint64(i))))
	targets := make([]int, l.batchSize)
	for j := range targets {
		targets[j] = rng.IntN(l.classes)
	}
	return map[string]any{domain.DefaultInputKey: targets}, nil
}

// Model is a fake classifier whose logits favor the true class more as
// epochs pass. Noise controls how often the favored class is wrong.
type Model struct {
	Classes int
	Noise   float64
	Seed    int64
}

// Handler returns a runner.BatchHandler writing logits under "logits" and a
// cross-entropy "loss" scalar under "loss".
func (m Model) Handler() runner.BatchHandler {
	return func(_ context.Context, s *domain.RunState) error {
		raw, err := s.LookupInput(domain.DefaultInputKey)
		if err != nil {
			return err
		}
		targets, ok := raw.([]int)
		if !ok {
			return fmt.Errorf("synthetic model: targets must be []int, got %T", raw)
		}

		rng := rand.New(rand.NewPCG(uint64(m.Seed), hash(s.Loader, uint64(s.Epoch)<<32|uint64(s.Step))))
		// Confidence in the true class grows with the epoch.
		signal := 1 + float64(s.Epoch)
		logits := make([][]float64, len(targets))
		var loss float64
		for i, y := range targets {
			row := make([]float64, m.Classes)
			for c := range row {
				row[c] = rng.NormFloat64() * (1 + m.Noise)
			}
			row[y] += signal
			logits[i] = row
			loss += crossEntropy(row, y)
		}

		s.Output[domain.DefaultOutputKey] = logits
		s.Output["loss"] = loss / float64(len(targets))
		return nil
	}
}

func crossEntropy(logits []float64, target int) float64 {
	maxv := math.Inf(-1)
	for _, v := range logits {
		maxv = math.Max(maxv, v)
	}
	var sum float64
	for _, v := range logits {
		sum += math.Exp(v - maxv)
	}
	return -(logits[target] - maxv - math.Log(sum))
}

// hash mixes a name and a counter into a PCG stream selector (FNV-1a).
func hash(name string, n uint64) uint64 {
	h := uint64(14695981039346656037)
	for i := 0; i < len(name); i++ {
		h ^= uint64(name[i])
		h *= 1099511628211
	}
	return h ^ n
}
