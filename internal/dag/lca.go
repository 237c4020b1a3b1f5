// Package dag computes the split point of two branch heads: the
// lowest common ancestor in the commit history, where distance is
// measured in parent edges (first or second) from each head. This is
// the one piece of the system with genuine algorithmic content, so the
// tie-break rule is implemented exactly as specified rather than left
// to whatever a heap happens to do.
package dag

import (
	"container/heap"

	"gitlet/internal/objects"
)

// Loader resolves a commit id to its commit. Both the object store and
// a test fixture satisfy this signature.
type Loader func(id string) (*objects.Commit, error)

// None is the split point returned when the two heads share no common
// ancestor, mirroring the "none" sentinel commits use for a missing
// parent.
const None = objects.NoParent

// item is one entry in a search queue: a commit id at a known distance
// from that queue's head, tagged with the order it was enqueued so
// that equal distances break ties deterministically.
type item struct {
	id       string
	dist     int
	sequence int
}

// queue is a min-heap on (dist, sequence): the closest commit to the
// seed head comes out first, and among equal distances the one
// enqueued earlier comes out first.
type queue []item

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].sequence < q[j].sequence
}
func (q queue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)        { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	last := old[n-1]
	*q = old[:n-1]
	return last
}

// search tracks one head's frontier: the shortest known distance to
// every commit visited so far, and a running sequence counter so ties
// resolve in enqueue order.
type search struct {
	q    queue
	dist map[string]int
	seq  int
}

func newSearch(head string) *search {
	s := &search{dist: map[string]int{}}
	heap.Init(&s.q)
	s.push(head, 0)
	return s
}

func (s *search) push(id string, dist int) {
	if prior, ok := s.dist[id]; ok && prior <= dist {
		return
	}
	s.dist[id] = dist
	heap.Push(&s.q, item{id: id, dist: dist, sequence: s.seq})
	s.seq++
}

// step pops the closest unexplored commit (if any), recording it and
// enqueuing its parents one edge further out. It returns the popped
// commit id and whether the queue had anything to pop.
func (s *search) step(load Loader) (string, bool, error) {
	if s.q.Len() == 0 {
		return "", false, nil
	}
	next := heap.Pop(&s.q).(item)
	s.dist[next.id] = next.dist

	c, err := load(next.id)
	if err != nil {
		return "", false, err
	}
	for _, p := range c.Parents {
		if p == objects.NoParent {
			continue
		}
		s.push(p, next.dist+1)
	}
	return next.id, true, nil
}

// SplitPoint computes the lowest common ancestor of headA and headB by
// alternating single steps of two independent searches and checking,
// after every pair of steps, whether their visited sets now intersect.
// Among candidates in the intersection, the one with the smallest
// distance from headA wins; ties go to whichever was discovered first
// by search A, which is what makes the result stable across runs.
func SplitPoint(load Loader, headA, headB string) (string, error) {
	if headA == objects.NoParent || headB == objects.NoParent {
		return None, nil
	}
	if headA == headB {
		return headA, nil
	}

	a := newSearch(headA)
	b := newSearch(headB)

	visitedA := map[string]int{}
	visitedB := map[string]int{}
	orderA := map[string]int{}
	seqA := 0

	for a.q.Len() > 0 || b.q.Len() > 0 {
		if a.q.Len() > 0 {
			id, ok, err := a.step(load)
			if err != nil {
				return "", err
			}
			if ok {
				if _, seen := visitedA[id]; !seen {
					orderA[id] = seqA
					seqA++
				}
				visitedA[id] = a.dist[id]
			}
		}
		if b.q.Len() > 0 {
			id, ok, err := b.step(load)
			if err != nil {
				return "", err
			}
			if ok {
				visitedB[id] = b.dist[id]
			}
		}

		best := ""
		bestDist := -1
		bestOrder := -1
		for id, da := range visitedA {
			if _, ok := visitedB[id]; !ok {
				continue
			}
			o := orderA[id]
			if best == "" || da < bestDist || (da == bestDist && o < bestOrder) {
				best = id
				bestDist = da
				bestOrder = o
			}
		}
		if best != "" {
			return best, nil
		}
	}
	return None, nil
}
