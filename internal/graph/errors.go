package graph

import (
	"github.com/specialistvlad/workgraph/internal/executor"
	"github.com/specialistvlad/workgraph/internal/localexecutor"
	"github.com/specialistvlad/workgraph/internal/scheduler"
	"github.com/specialistvlad/workgraph/internal/topologystore"
)

// Errors surfaced by the work graph. They are aliases so that callers only
// need to import this package.
type (
	DuplicateNodeError        = topologystore.DuplicateNodeError
	UnableToMakeProgressError = scheduler.UnableToMakeProgressError
	NodeError                 = executor.NodeError
)

var (
	ErrDuplicateNode        = topologystore.ErrDuplicateNode
	ErrUnableToMakeProgress = scheduler.ErrUnableToMakeProgress
	ErrInvalidConcurrency   = localexecutor.ErrInvalidConcurrency
)
