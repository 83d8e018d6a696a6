// Package node defines the vertices of the work graph: infrastructure stacks
// and the build and publish steps of the assets those stacks reference.
//
// Every node carries an id, an ordered set of dependency ids and an
// execution state. The state is stored atomically so that read-only
// observers (status endpoints, progress reporters) may look at it while the
// scheduler is the single writer.
package node
