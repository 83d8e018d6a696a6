// Package inmemorytopology provides a simple, thread-safe, in-memory
// implementation of the topologystore.Store interface that remembers the
// order in which nodes were added.
package inmemorytopology
