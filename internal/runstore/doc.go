// Package runstore records what happened to every node during a run: its
// last state, the error it failed with and when it was queued, started and
// finished.
//
// # Concurrency Model
//
// The store is written by the executor's supervisor through the
// executor.Observer interface and may be read concurrently, e.g. by a status
// endpoint. It uses sync.Map because each node's record is independent and
// the key space is fixed once the run has started.
package runstore
