/*
Package observability provides sink observers that report a run as it progresses.

  - Logger writes structured slog records at every hook.
  - Console prints a colored one-line summary per loader.
  - Report renders a markdown table of the final epoch when the run ends.
  - HistoryWriter appends loader aggregates to a ports.HistoryStore.

None of them mutate the RunState, so they can be registered anywhere after the
observers that compute metrics.
*/
package observability
