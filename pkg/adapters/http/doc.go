// Package http serves run state, metric history and Prometheus metrics over HTTP using chi.
package http
