// Package topologystore defines the interface for storing and retrieving the
// nodes of a work graph together with their dependency edges.
//
// # Why Topology Store Exists
//
// The store is the single source of truth for which nodes exist and in which
// order they were added. Insertion order matters: it is the tie-breaker the
// scheduler uses when several nodes become ready at the same time, which is
// what makes runs with the same graph reproducible.
//
// # Lifecycle and Usage
//
// The topology store is:
//  1. **Populated** while the graph is constructed (nodes carry their dependency ids)
//  2. **Rewritten** by the dependency sanitizer and the asset pruner (RemoveNode)
//  3. **Read** by the scheduler during execution, which only mutates node state
//
// No node is added once execution has started.
package topologystore

import (
	"errors"
	"fmt"
	"iter"

	"github.com/specialistvlad/workgraph/internal/node"
)

// ErrDuplicateNode is matched by every *DuplicateNodeError.
var ErrDuplicateNode = errors.New("duplicate node")

// DuplicateNodeError is returned when a node id is inserted twice.
type DuplicateNodeError struct {
	ID string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("duplicate use of node id: %s", e.ID)
}

// Is lets errors.Is match ErrDuplicateNode.
func (e *DuplicateNodeError) Is(target error) bool {
	return target == ErrDuplicateNode
}

// Store is the interface for managing the nodes of a work graph.
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for concurrent use. Reads may happen from
// observers (status endpoints) while the graph is being executed.
//
// # Typical Implementation
//
// See internal/inmemorytopology for the reference in-memory implementation.
type Store interface {
	// AddNode appends a node. It returns a *DuplicateNodeError when a node
	// with the same id is already present and leaves the store unchanged.
	AddNode(n node.Node) error

	// RemoveNode deletes the node with the given id and removes that id from
	// the dependency set of every remaining node. It reports whether the
	// node was present.
	RemoveNode(id string) bool

	// Node retrieves a single node by id.
	Node(id string) (node.Node, bool)

	// Has reports whether a node with the given id is present.
	Has(id string) bool

	// Nodes yields every node in insertion order. The sequence iterates a
	// snapshot taken when iteration starts, so it is restartable and
	// unaffected by concurrent removals.
	Nodes() iter.Seq[node.Node]

	// Len returns the number of nodes.
	Len() int
}
