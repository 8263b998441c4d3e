/*
Package ports defines the driven ports (interfaces) shared by the sink adapters.

These interfaces decouple the observers from external implementations, allowing
the same history and state views to be served from memory, SQLite or Redis.

# Key Interfaces

  - HistoryStore: Appends and queries per-loader metric records of a run.
  - StateSource: Exposes a point-in-time Snapshot of a running RunState (used by /state).
*/
package ports
