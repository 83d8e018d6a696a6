package scheduler

import "github.com/specialistvlad/workgraph/internal/node"

// queue is a FIFO of ready nodes.
type queue struct {
	items []node.Node
}

func (q *queue) push(n node.Node) {
	q.items = append(q.items, n)
}

func (q *queue) pop() (node.Node, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	n := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return n, true
}

func (q *queue) len() int {
	return len(q.items)
}
