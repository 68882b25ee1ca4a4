// Package pathfind implements A* search over the implicit 16-neighbour
// grid described in internal/geo, honouring no-fly regions.
//
// The open set is a container/heap priority queue, grounded on the same
// pattern the pack's acdtunes-spacetraders task queue uses
// (internal/application/trading/services/task_queue.go): a heap.Interface
// wrapper plus an index map for bookkeeping. The node/parent-pointer
// shape and the outer expansion loop follow the teacher's
// route/isochrone.go Position/Context design, collapsed from its
// flood-fill isochrone search down to a single-goal A*.
package pathfind

import (
	"container/heap"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/geo"
)

// node is one expanded grid cell.
type node struct {
	pos    geo.Position
	g      float64
	f      float64
	parent *node
	seq    int // insertion order, used to break f-ties FIFO
}

type openQueue []*node

func (q openQueue) Len() int { return len(q) }
func (q openQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}
func (q openQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *openQueue) Push(x interface{}) {
	*q = append(*q, x.(*node))
}
func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// recencyWindow is the size of the FIFO of most-recently-closed grid
// cells. Neighbours whose quantised cell is still in this window are
// rejected — a local-minima escape hack, without which A* can loop or
// explode on the otherwise-infinite continuous grid (see SPEC_FULL.md
// §4.2 / spec.md §9).
const recencyWindow = 10

// Stats is the bookkeeping FindPathWithStats returns alongside one
// path. Expansions counts how many nodes that call popped from the open
// set; the dispatch driver adds it to a metrics counter.
type Stats struct {
	Expansions int
}

// FindPath runs A* from start to goal, honouring regions as no-fly
// zones. It returns the path in start-to-goal order, or an empty slice
// if no route exists (empty open set).
func FindPath(start, goal geo.Position, regions []geo.Region) []geo.Position {
	path, _ := FindPathWithStats(start, goal, regions)
	return path
}

// FindPathWithStats is FindPath plus expansion-count bookkeeping.
func FindPathWithStats(start, goal geo.Position, regions []geo.Region) ([]geo.Position, Stats) {
	if !start.Valid() || !goal.Valid() {
		return nil, Stats{}
	}

	open := &openQueue{}
	heap.Init(open)
	seq := 0

	startNode := &node{pos: start, g: 0, f: heuristic(start, goal), seq: seq}
	seq++
	heap.Push(open, startNode)

	bestG := map[geo.GridKey]float64{start.Quantise(): 0}
	closed := map[geo.GridKey]bool{}
	var recency []geo.GridKey

	stats := Stats{}

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		stats.Expansions++

		key := current.pos.Quantise()
		if closed[key] {
			continue
		}
		closed[key] = true
		recency = pushRecency(recency, key)

		if close, _ := geo.IsClose(current.pos, goal); close {
			return reconstruct(current), stats
		}

		for _, angle := range geo.CompassAngles {
			next, err := geo.NextPosition(current.pos, angle)
			if err != nil {
				continue
			}
			nKey := next.Quantise()
			if closed[nKey] {
				continue
			}
			if !geo.IsValidMove(current.pos, next, regions) {
				continue
			}
			if inRecency(recency, nKey) {
				continue
			}

			tentativeG := current.g + geo.Step
			if prevBest, ok := bestG[nKey]; ok && tentativeG >= prevBest {
				continue
			}
			bestG[nKey] = tentativeG

			n := &node{
				pos:    next,
				g:      tentativeG,
				f:      tentativeG + heuristic(next, goal),
				parent: current,
				seq:    seq,
			}
			seq++
			heap.Push(open, n)
		}
	}

	return nil, stats
}

// heuristic is the admissible lower bound on steps remaining: straight
// line distance divided by the fixed step size.
func heuristic(from, goal geo.Position) float64 {
	d, err := geo.Distance(from, goal)
	if err != nil {
		return 0
	}
	return d / geo.Step
}

func reconstruct(n *node) []geo.Position {
	var rev []geo.Position
	for cur := n; cur != nil; cur = cur.parent {
		rev = append(rev, cur.pos)
	}
	path := make([]geo.Position, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

func pushRecency(recency []geo.GridKey, key geo.GridKey) []geo.GridKey {
	recency = append(recency, key)
	if len(recency) > recencyWindow {
		recency = recency[len(recency)-recencyWindow:]
	}
	return recency
}

func inRecency(recency []geo.GridKey, key geo.GridKey) bool {
	for _, k := range recency {
		if k == key {
			return true
		}
	}
	return false
}
