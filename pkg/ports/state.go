package ports

import (
	"time"

	"github.com/aretw0/cadence/pkg/domain"
)

// Snapshot is a detached copy of the observable parts of a RunState.
type Snapshot struct {
	RunID         string                       `json:"run_id"`
	Mode          domain.Mode                  `json:"mode"`
	Epoch         int                          `json:"epoch"`
	Loader        string                       `json:"loader"`
	Step          int                          `json:"step"`
	LastHook      domain.Hook                  `json:"last_hook,omitempty"`
	Batches       int                          `json:"batches"`
	BatchMetrics  *domain.MetricSet            `json:"batch_metrics"`
	LoaderMetrics *domain.MetricSet            `json:"loader_metrics"`
	EpochMetrics  map[string]*domain.MetricSet `json:"epoch_metrics"`
	UpdatedAt     time.Time                    `json:"updated_at"`
}

// StateSource provides the latest snapshot of a run. Implementations must be
// safe for concurrent use since snapshots are read while the run progresses.
type StateSource interface {
	Snapshot() Snapshot
}

// SnapshotOf copies s. The metric sets of the result share nothing with s.
func SnapshotOf(s *domain.RunState, hook domain.Hook, batches int, ts time.Time) Snapshot {
	epoch := make(map[string]*domain.MetricSet, len(s.EpochMetrics))
	for k, v := range s.EpochMetrics {
		epoch[k] = v.Clone()
	}
	return Snapshot{
		RunID:         s.RunID,
		Mode:          s.Mode,
		Epoch:         s.Epoch,
		Loader:        s.Loader,
		Step:          s.Step,
		LastHook:      hook,
		Batches:       batches,
		BatchMetrics:  s.BatchMetrics.Clone(),
		LoaderMetrics: s.LoaderMetrics.Clone(),
		EpochMetrics:  epoch,
		UpdatedAt:     ts,
	}
}
