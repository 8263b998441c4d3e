package domain

// RunState is the shared, mutable context passed by reference to every
// lifecycle hook. It is owned by the driver; observers read Input and Output
// and write metrics.
type RunState struct {
	// RunID identifies the run across sinks (logs, redis keys, history rows).
	RunID string

	// Mode is the current driver mode (train or infer).
	Mode Mode

	// Epoch is the zero-based epoch index.
	Epoch int

	// Loader is the name of the loader currently being iterated.
	Loader string

	// Step is the zero-based batch index within the current loader.
	Step int

	// Input holds the batch inputs, e.g. "targets". Populated by the driver.
	Input map[string]any

	// Output holds the model outputs, e.g. "logits". Populated by the driver.
	Output map[string]any

	// BatchMetrics holds the metrics computed for the current batch.
	// Reset by the driver at the start of every batch.
	BatchMetrics *MetricSet

	// LoaderMetrics holds the per-loader aggregates of BatchMetrics.
	LoaderMetrics *MetricSet

	// EpochMetrics maps loader name to that loader's aggregates for the current epoch.
	EpochMetrics map[string]*MetricSet
}

// NewRunState creates an empty state for the given run.
func NewRunState(runID string, mode Mode) *RunState {
	return &RunState{
		RunID:         runID,
		Mode:          mode,
		Input:         make(map[string]any),
		Output:        make(map[string]any),
		BatchMetrics:  NewMetricSet(),
		LoaderMetrics: NewMetricSet(),
		EpochMetrics:  make(map[string]*MetricSet),
	}
}

// ResetBatch clears the per-batch inputs, outputs and metrics.
func (s *RunState) ResetBatch() {
	s.Input = make(map[string]any)
	s.Output = make(map[string]any)
	if s.BatchMetrics == nil {
		s.BatchMetrics = NewMetricSet()
	}
	s.BatchMetrics.Reset()
}

// ResetLoader clears the per-loader aggregates.
func (s *RunState) ResetLoader() {
	if s.LoaderMetrics == nil {
		s.LoaderMetrics = NewMetricSet()
	}
	s.LoaderMetrics.Reset()
}

// ResetEpoch clears the per-epoch aggregates.
func (s *RunState) ResetEpoch() {
	s.EpochMetrics = make(map[string]*MetricSet)
}

// LookupInput returns Input[key] or a *KeyMissingError.
func (s *RunState) LookupInput(key string) (any, error) {
	v, ok := s.Input[key]
	if !ok {
		return nil, &KeyMissingError{Source: "input", Key: key}
	}
	return v, nil
}

// LookupOutput returns Output[key] or a *KeyMissingError.
func (s *RunState) LookupOutput(key string) (any, error) {
	v, ok := s.Output[key]
	if !ok {
		return nil, &KeyMissingError{Source: "output", Key: key}
	}
	return v, nil
}
