package runstore

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/workgraph/internal/executor"
	"github.com/specialistvlad/workgraph/internal/node"
)

// Record is the outcome of a single node.
type Record struct {
	ID    string
	Kind  node.Kind
	State node.State
	Err   error

	Queued   time.Time
	Started  time.Time
	Finished time.Time

	seq int64
}

// Duration returns how long the callback ran, or zero if it did not finish.
func (r Record) Duration() time.Duration {
	if r.Started.IsZero() || r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// Store is an in-memory run journal.
type Store struct {
	records sync.Map // Key: node ID string, Value: Record
	seq     atomic.Int64
	now     func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

var _ executor.Observer = (*Store)(nil)

// NodeStateChanged implements executor.Observer.
func (s *Store) NodeStateChanged(_ context.Context, n node.Node, state node.State, err error) {
	rec, ok := s.Get(n.ID())
	if !ok {
		rec = Record{ID: n.ID(), Kind: n.Kind(), seq: s.seq.Add(1)}
	}

	rec.State = state
	switch state {
	case node.Queued:
		rec.Queued = s.now()
	case node.Deploying:
		rec.Started = s.now()
	case node.Completed:
		rec.Finished = s.now()
	case node.Failed:
		rec.Finished = s.now()
		rec.Err = err
	}
	s.records.Store(n.ID(), rec)
}

// Get returns the record of a node.
func (s *Store) Get(id string) (Record, bool) {
	v, ok := s.records.Load(id)
	if !ok {
		return Record{}, false
	}
	return v.(Record), true
}

// Records returns every record in the order the nodes were first seen.
func (s *Store) Records() []Record {
	var out []Record
	s.records.Range(func(_, v any) bool {
		out = append(out, v.(Record))
		return true
	})
	slices.SortFunc(out, func(a, b Record) int { return cmp.Compare(a.seq, b.seq) })
	return out
}

// Failed returns the records of failed nodes in the order they were first seen.
func (s *Store) Failed() []Record {
	return slices.DeleteFunc(s.Records(), func(r Record) bool { return r.State != node.Failed })
}
