package scheduler

import "github.com/specialistvlad/workgraph/internal/node"

// dfsFrame is one entry of the explicit DFS stack: a node and the index of
// the next dependency to explore.
type dfsFrame struct {
	id   string
	deps []string
	next int
}

// FindCycle searches the given nodes for a dependency cycle. Edges leading
// outside the set are ignored. Roots and edges are visited in slice order
// and dependency order, so the result is deterministic. The returned path
// starts and ends with the same id, e.g. [A B A]; it is nil when the nodes
// are acyclic.
func FindCycle(nodes []node.Node) []string {
	const (
		unvisited = iota
		onPath
		done
	)

	byID := make(map[string]node.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID()] = n
	}
	color := make(map[string]int, len(nodes))

	for _, root := range nodes {
		if color[root.ID()] != unvisited {
			continue
		}

		color[root.ID()] = onPath
		stack := []dfsFrame{{id: root.ID(), deps: root.Dependencies()}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.deps) {
				color[top.id] = done
				stack = stack[:len(stack)-1]
				continue
			}

			dep := top.deps[top.next]
			top.next++

			depNode, ok := byID[dep]
			if !ok {
				continue
			}

			switch color[dep] {
			case onPath:
				return cyclePath(stack, dep)
			case unvisited:
				color[dep] = onPath
				stack = append(stack, dfsFrame{id: dep, deps: depNode.Dependencies()})
			}
		}
	}
	return nil
}

// cyclePath cuts the DFS path at the first occurrence of repeated and closes
// the loop with it.
func cyclePath(stack []dfsFrame, repeated string) []string {
	start := 0
	for i, f := range stack {
		if f.id == repeated {
			start = i
			break
		}
	}

	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.id)
	}
	return append(path, repeated)
}
