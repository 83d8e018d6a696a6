package node

import "fmt"

// State represents the execution state of a node in the graph.
type State int32

const (
	// Pending indicates the node is waiting for its dependencies to complete.
	Pending State = iota
	// Queued indicates the node is ready and waits for a free execution slot.
	Queued
	// Deploying indicates the node's callback is currently running.
	Deploying
	// Completed indicates the node's callback finished successfully.
	Completed
	// Failed indicates the node's callback returned an error.
	Failed
)

var stateNames = [...]string{
	Pending:   "PENDING",
	Queued:    "QUEUED",
	Deploying: "DEPLOYING",
	Completed: "COMPLETED",
	Failed:    "FAILED",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int32(s))
	}
	return stateNames[s]
}

// States lists every state in lifecycle order.
func States() []State {
	return []State{Pending, Queued, Deploying, Completed, Failed}
}

// allowed holds the legal lifecycle edges.
var allowed = map[State][]State{
	Pending:   {Queued},
	Queued:    {Deploying},
	Deploying: {Completed, Failed},
}

// CanTransition reports whether a node may move from one state to another.
func CanTransition(from, to State) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}
