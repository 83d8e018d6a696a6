// Package events streams the progress of a run to a socket.io server, so a
// dashboard can follow a deployment live. The Reporter implements
// executor.Observer and emits one event per node state change.
package events
