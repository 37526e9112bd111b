package solver

import "github.com/gridrush/rushhour/puzzle/engine"

// node is a search-tree node: the state it wraps, the parent link used for
// path reconstruction, and the accumulated path cost from the root. Parent
// links always point strictly toward the root, so they form a tree, never a
// cycle.
type node struct {
	state  *engine.State
	parent *node
	cost   int

	// priority orders heap frontiers: path cost for UCS, cost plus heuristic
	// for A*. seq breaks priority ties toward the earliest inserted entry.
	priority int
	seq      uint64
	index    int
}

// path reconstructs the root-to-node state sequence by following parent
// links and reversing.
func (n *node) path() []*engine.State {
	var states []*engine.State
	for cur := n; cur != nil; cur = cur.parent {
		states = append(states, cur.state)
	}
	for i, j := 0, len(states)-1; i < j; i, j = i+1, j-1 {
		states[i], states[j] = states[j], states[i]
	}
	return states
}

// fifo is the BFS frontier.
type fifo struct {
	items []*node
}

func (q *fifo) push(n *node) { q.items = append(q.items, n) }

func (q *fifo) pop() *node {
	n := q.items[0]
	q.items = q.items[1:]
	return n
}

func (q *fifo) empty() bool { return len(q.items) == 0 }

// lifo is the DFS frontier.
type lifo struct {
	items []*node
}

func (s *lifo) push(n *node) { s.items = append(s.items, n) }

func (s *lifo) pop() *node {
	n := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return n
}

func (s *lifo) empty() bool { return len(s.items) == 0 }

// minQueue is the priority frontier for UCS and A*, built on container/heap.
// Lower priority pops first; equal priorities pop in insertion order.
type minQueue []*node

func (q minQueue) Len() int { return len(q) }

func (q minQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q minQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *minQueue) Push(x interface{}) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *minQueue) Pop() interface{} {
	old := *q
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*q = old[:last]
	return n
}
