// Package prometheus exports run metrics as Prometheus collectors.
package prometheus
