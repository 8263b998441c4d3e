package ports

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aretw0/cadence/pkg/domain"
)

// ErrRunNotFound is returned by HistoryStore.Query when no record exists for a run.
var ErrRunNotFound = errors.New("run not found")

// MetricRecord is one aggregated metric value of one loader in one epoch.
type MetricRecord struct {
	RunID  string      `json:"run_id"`
	Mode   domain.Mode `json:"mode"`
	Epoch  int         `json:"epoch"`
	Loader string      `json:"loader"`
	Metric string      `json:"metric"`
	Value  float64     `json:"value"`
	Time   time.Time   `json:"ts"`
}

type recordJSON MetricRecord

// MarshalJSON keeps non-finite values encodable, see domain.Float.
func (r MetricRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		recordJSON
		Value domain.Float `json:"value"`
	}{recordJSON(r), domain.Float(r.Value)})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *MetricRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		recordJSON
		Value domain.Float `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = MetricRecord(aux.recordJSON)
	r.Value = float64(aux.Value)
	return nil
}

// HistoryStore persists metric records across runs.
type HistoryStore interface {
	// Append stores records. Appending nothing is a no-op.
	Append(ctx context.Context, records ...MetricRecord) error

	// Query returns the records of a run in insertion order.
	// Returns ErrRunNotFound if the run has no records.
	Query(ctx context.Context, runID string) ([]MetricRecord, error)

	// Runs lists the known run IDs.
	Runs(ctx context.Context) ([]string, error)
}

// LoaderRecords converts the loader aggregates of s into records stamped with ts,
// in metric insertion order.
func LoaderRecords(s *domain.RunState, ts time.Time) []MetricRecord {
	records := make([]MetricRecord, 0, s.LoaderMetrics.Len())
	s.LoaderMetrics.Each(func(name string, v float64) {
		records = append(records, MetricRecord{
			RunID:  s.RunID,
			Mode:   s.Mode,
			Epoch:  s.Epoch,
			Loader: s.Loader,
			Metric: name,
			Value:  v,
			Time:   ts,
		})
	})
	return records
}
