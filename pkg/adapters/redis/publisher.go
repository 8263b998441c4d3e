package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/aretw0/cadence/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Publisher is an observer that mirrors run metrics into Redis:
//
//	<prefix><run>:batch    HASH  latest batch metrics
//	<prefix><run>:loaders  LIST  JSON ports.MetricRecord per loader metric
//	<prefix>runs           SET   run IDs
//
// It also implements ports.HistoryStore over the same keys. With a TTL the
// per-run keys expire while the runs set does not; Runs drops members whose
// loader list is gone.
type Publisher struct {
	observer.Base

	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

var (
	_ observer.Observer  = (*Publisher)(nil)
	_ ports.HistoryStore = (*Publisher)(nil)
)

type Option func(*Publisher)

// WithTTL sets the expiration applied to every key of a run.
func WithTTL(ttl time.Duration) Option {
	return func(p *Publisher) {
		p.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// New creates a new Redis publisher with options.
func New(address, password string, db int, opts ...Option) *Publisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis publisher from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		prefix: "cadence:",
		ttl:    0, // No expiration by default
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Publisher) batchKey(runID string) string {
	return p.prefix + runID + ":batch"
}

func (p *Publisher) loadersKey(runID string) string {
	return p.prefix + runID + ":loaders"
}

func (p *Publisher) runsKey() string {
	return p.prefix + "runs"
}

func (p *Publisher) expire(ctx context.Context, pipe backend.Pipeliner, keys ...string) {
	if p.ttl <= 0 {
		return
	}
	for _, k := range keys {
		pipe.Expire(ctx, k, p.ttl)
	}
}

// OnBatchEnd overwrites the run's batch hash with the current batch metrics.
func (p *Publisher) OnBatchEnd(ctx context.Context, s *domain.RunState) error {
	if s.BatchMetrics.Len() == 0 {
		return nil
	}
	fields := make(map[string]any, s.BatchMetrics.Len())
	s.BatchMetrics.Each(func(k string, v float64) { fields[k] = v })

	key := p.batchKey(s.RunID)
	pipe := p.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	p.expire(ctx, pipe, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish batch metrics: %w", err)
	}
	return nil
}

// OnLoaderEnd appends one record per loader aggregate.
func (p *Publisher) OnLoaderEnd(ctx context.Context, s *domain.RunState) error {
	return p.Append(ctx, ports.LoaderRecords(s, p.now())...)
}

// Append pushes records onto their runs' loader lists.
func (p *Publisher) Append(ctx context.Context, records ...ports.MetricRecord) error {
	if len(records) == 0 {
		return nil
	}

	pipe := p.client.Pipeline()
	touched := make(map[string]bool)
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		pipe.RPush(ctx, p.loadersKey(r.RunID), data)
		touched[r.RunID] = true
	}
	for runID := range touched {
		pipe.SAdd(ctx, p.runsKey(), runID)
		p.expire(ctx, pipe, p.loadersKey(runID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// Query reads back the loader records of a run.
func (p *Publisher) Query(ctx context.Context, runID string) ([]ports.MetricRecord, error) {
	vals, err := p.client.LRange(ctx, p.loadersKey(runID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}
	if len(vals) == 0 {
		return nil, ports.ErrRunNotFound
	}

	records := make([]ports.MetricRecord, 0, len(vals))
	for _, v := range vals {
		var r ports.MetricRecord
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Runs lists the run IDs that still have loader records, sorted. Expired runs
// are removed from the runs set.
func (p *Publisher) Runs(ctx context.Context) ([]string, error) {
	members, err := p.client.SMembers(ctx, p.runsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	pipe := p.client.Pipeline()
	exists := make([]*backend.IntCmd, len(members))
	for i, runID := range members {
		exists[i] = pipe.Exists(ctx, p.loadersKey(runID))
	}
	if len(members) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to check runs: %w", err)
		}
	}

	runs := make([]string, 0, len(members))
	var expired []any
	for i, runID := range members {
		if exists[i].Val() == 0 {
			expired = append(expired, runID)
			continue
		}
		runs = append(runs, runID)
	}
	if len(expired) > 0 {
		if err := p.client.SRem(ctx, p.runsKey(), expired...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune runs: %w", err)
		}
	}
	sort.Strings(runs)
	return runs, nil
}

// BatchMetrics returns the last published batch metrics of a run.
func (p *Publisher) BatchMetrics(ctx context.Context, runID string) (map[string]string, error) {
	return p.client.HGetAll(ctx, p.batchKey(runID)).Result()
}

// Close closes the redis client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
