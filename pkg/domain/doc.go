/*
Package domain contains the core data model shared by the dispatcher, the
observers and the training driver.

It is kept free of I/O and persistence so that every observer, sink and
driver depends on the same small vocabulary.

# Key Entities

  - RunState: the mutable context handed to every lifecycle hook (inputs, outputs, metrics).
  - MetricSet: an insertion-ordered mapping of metric name to scalar value.
  - Hook: the ten lifecycle transition points, in nesting order.
  - Params: opaque named parameters forwarded verbatim to metric functions.
*/
package domain
