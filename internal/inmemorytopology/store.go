package inmemorytopology

import (
	"iter"
	"slices"
	"sync"

	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/topologystore"
)

// Store implements the topologystore.Store interface using a map for lookups,
// a slice for ordering and a mutex for thread-safe concurrent access.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]node.Node
	order []string
}

// New creates a new, empty in-memory topology store.
func New() *Store {
	return &Store{
		nodes: make(map[string]node.Node),
	}
}

var _ topologystore.Store = (*Store)(nil)

// AddNode adds a new node to the store.
func (s *Store) AddNode(n node.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := n.ID()
	if _, exists := s.nodes[id]; exists {
		return &topologystore.DuplicateNodeError{ID: id}
	}
	s.nodes[id] = n
	s.order = append(s.order, id)
	return nil
}

// RemoveNode deletes a node and scrubs its id from every dependency set.
func (s *Store) RemoveNode(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[id]; !exists {
		return false
	}
	delete(s.nodes, id)
	s.order = slices.DeleteFunc(s.order, func(other string) bool { return other == id })

	for _, other := range s.order {
		s.nodes[other].RemoveDependency(id)
	}
	return true
}

// Node retrieves a single node by its id.
func (s *Store) Node(id string) (node.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id]
	return n, ok
}

// Has reports whether the id is known.
func (s *Store) Has(id string) bool {
	_, ok := s.Node(id)
	return ok
}

// Nodes returns the nodes in insertion order.
func (s *Store) Nodes() iter.Seq[node.Node] {
	return func(yield func(node.Node) bool) {
		for _, n := range s.snapshot() {
			if !yield(n) {
				return
			}
		}
	}
}

// Len returns the number of nodes in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Store) snapshot() []node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]node.Node, 0, len(s.order))
	for _, id := range s.order {
		nodes = append(nodes, s.nodes[id])
	}
	return nodes
}
