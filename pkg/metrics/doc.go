// Package metrics provides reference metric functions for the metric
// observers and a name-keyed registry used by configuration-driven pipelines.
package metrics
