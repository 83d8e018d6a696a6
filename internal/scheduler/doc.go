// Package scheduler provides the decision-making engine for the work graph.
// Its primary role is to analyze the state of a graph and determine which
// nodes are ready to be executed, and in which order, handing them to the
// executor one at a time.
//
// A node is ready when it is Pending and every dependency id refers to a
// Completed node. Ready nodes wait in a FIFO queue; nodes that become ready
// during the same scan are appended in graph insertion order.
//
// When nothing is running and nothing is ready although work remains, the
// scheduler explains why with an *UnableToMakeProgressError, which names a
// dependency cycle whenever the remaining work contains one.
package scheduler
