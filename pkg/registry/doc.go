// Package registry maps metric names to metric functions so pipelines can be
// declared in configuration files.
package registry
