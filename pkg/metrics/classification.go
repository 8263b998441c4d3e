package metrics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/cadence/pkg/domain"
)

// Accuracy returns the fraction of rows whose highest score is at the target index.
func Accuracy(targets, outputs any, _ domain.Params) (any, error) {
	accs, err := topK(targets, outputs, []int{1})
	if err != nil {
		return nil, err
	}
	return accs[0], nil
}

// TopKAccuracy returns, for every label, the fraction of rows whose target is
// among the k highest scores. Labels are integers, optionally zero-padded ("01", "03").
func TopKAccuracy(targets, outputs any, listArgs []string, _ domain.Params) ([]any, error) {
	ks := make([]int, len(listArgs))
	for i, arg := range listArgs {
		k, err := strconv.Atoi(strings.TrimLeft(arg, "0"))
		if err != nil || k <= 0 {
			return nil, fmt.Errorf("invalid k %q", arg)
		}
		ks[i] = k
	}
	accs, err := topK(targets, outputs, ks)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(accs))
	for i, a := range accs {
		out[i] = a
	}
	return out, nil
}

func topK(targets, outputs any, ks []int) ([]float64, error) {
	labels, err := toInts(targets)
	if err != nil {
		return nil, err
	}
	scores, err := toMatrix(outputs)
	if err != nil {
		return nil, err
	}
	if err := sameLength(len(labels), len(scores)); err != nil {
		return nil, err
	}

	hits := make([]int, len(ks))
	for i, row := range scores {
		target := labels[i]
		if target < 0 || target >= len(row) {
			return nil, fmt.Errorf("target %d out of range for %d classes", target, len(row))
		}
		rank := rankOf(row, target)
		for j, k := range ks {
			if rank < k {
				hits[j]++
			}
		}
	}

	accs := make([]float64, len(ks))
	for j := range ks {
		accs[j] = float64(hits[j]) / float64(len(labels))
	}
	return accs, nil
}

// rankOf returns the zero-based position of index idx when row is sorted by
// descending score. Ties are broken by index.
func rankOf(row []float64, idx int) int {
	order := make([]int, len(row))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return row[order[a]] > row[order[b]] })
	for pos, i := range order {
		if i == idx {
			return pos
		}
	}
	return len(row)
}

type binaryParams struct {
	Threshold float64 `mapstructure:"threshold"`
}

// BinaryAccuracy compares probabilities against 0/1 targets.
// Params: threshold (default 0.5).
func BinaryAccuracy(targets, outputs any, params domain.Params) (any, error) {
	cfg := binaryParams{Threshold: 0.5}
	if err := params.Decode(&cfg); err != nil {
		return nil, err
	}
	labels, err := toFloats(targets)
	if err != nil {
		return nil, fmt.Errorf("targets: %w", err)
	}
	probs, err := toFloats(outputs)
	if err != nil {
		return nil, fmt.Errorf("outputs: %w", err)
	}
	if err := sameLength(len(labels), len(probs)); err != nil {
		return nil, err
	}

	hits := 0
	for i, p := range probs {
		predicted := 0.0
		if p >= cfg.Threshold {
			predicted = 1
		}
		if predicted == labels[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(labels)), nil
}
