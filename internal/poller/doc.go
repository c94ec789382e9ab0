// Package poller provides the HTTP checking and cycle scheduling used by testuri.
//
// This package is internal to testuri. Checks are strictly sequential: a
// cycle walks the target list in order and issues one GET per target.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with per-request timeouts
//   - [Client.Sweep]: Ordered, sequential check of a target list
//   - [Scheduler]: Runs cycles back to back with a fixed pause in between
//   - [Result]: Outcome of checking a single target
//
// Users of the testuri library should not need to interact with this
// package directly. Configuration is done through the main testuri package.
package poller
