// Package store holds the most recent polling cycle in memory.
//
// The poller writes its durable history to report files; this package only
// keeps the latest cycle so the ops server can answer /healthz and
// /api/status without reading the output directory.
//
//   - [Store]: interface for recording and reading the last cycle
//   - [MemoryStore]: mutex-guarded implementation
//   - [FromReport] and [Recorder]: adapters from testuri.CycleReport
package store
