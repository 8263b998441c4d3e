package domain

import (
	"bytes"
	"encoding/json"
)

// MetricSet is an insertion-ordered mapping from metric name to scalar value.
// Writing an existing key replaces its value and keeps its original position.
// The zero value is ready to use. Not safe for concurrent use.
type MetricSet struct {
	keys   []string
	values map[string]float64
}

// NewMetricSet creates an empty MetricSet.
func NewMetricSet() *MetricSet {
	return &MetricSet{values: make(map[string]float64)}
}

// Set stores v under key.
func (m *MetricSet) Set(key string, v float64) {
	if m.values == nil {
		m.values = make(map[string]float64)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *MetricSet) Get(key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the metric names in insertion order.
func (m *MetricSet) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of metrics held.
func (m *MetricSet) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Each calls fn for every metric in insertion order.
func (m *MetricSet) Each(fn func(key string, v float64)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// Reset removes every metric.
func (m *MetricSet) Reset() {
	m.keys = m.keys[:0]
	m.values = make(map[string]float64)
}

// Clone returns an independent copy.
func (m *MetricSet) Clone() *MetricSet {
	out := NewMetricSet()
	m.Each(out.Set)
	return out
}

// Map returns the metrics as a plain map. Ordering is lost.
func (m *MetricSet) Map() map[string]float64 {
	out := make(map[string]float64, m.Len())
	m.Each(func(k string, v float64) { out[k] = v })
	return out
}

// MarshalJSON encodes the set as a JSON object preserving insertion order.
// Non-finite values are encoded as Float does.
func (m *MetricSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := Float(m.values[k]).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
