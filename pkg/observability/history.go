package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/aretw0/cadence/pkg/ports"
)

// HistoryWriter appends the loader aggregates to a store at every loader end.
type HistoryWriter struct {
	observer.Base
	store ports.HistoryStore
	now   func() time.Time
}

var _ observer.Observer = (*HistoryWriter)(nil)

// NewHistoryWriter creates a HistoryWriter over store.
func NewHistoryWriter(store ports.HistoryStore) *HistoryWriter {
	return &HistoryWriter{store: store, now: time.Now}
}

func (h *HistoryWriter) OnLoaderEnd(ctx context.Context, s *domain.RunState) error {
	if err := h.store.Append(ctx, ports.LoaderRecords(s, h.now().UTC())...); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}
