package executor

import (
	"fmt"

	"github.com/specialistvlad/workgraph/internal/node"
)

// NodeError wraps the error returned by a node's callback.
type NodeError struct {
	ID   string
	Kind node.Kind
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s %q failed: %v", e.Kind, e.ID, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// PanicError is reported when a callback panics.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("callback panicked: %v", e.Value)
}
