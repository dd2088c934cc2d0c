// Package queue implements a small heap-based priority queue used by the
// gateway bridge to order uplink records (distress traffic ahead of routine
// telemetry) independently of arrival order.
package queue

import "container/heap"

// Item is a single queued value with an explicit priority.
type Item struct {
	Value    interface{}
	Priority int // higher runs first
	index    int
}

// PriorityQueue is a priority queue ordered highest-Priority-first, ties
// broken by insertion order (FIFO within a priority band).
//
// Unlike pkg/mac's frame scheduler, which scans a bounded (<=50 element) pool
// and must reproduce exact wrap-safe deadline semantics, this queue backs an
// unbounded, non-embedded component, so a heap is the appropriate structure.
type PriorityQueue struct {
	items  itemHeap
	seqNum int
}

// New creates an empty PriorityQueue.
func New() *PriorityQueue {
	pq := &PriorityQueue{}
	heap.Init(&pq.items)
	return pq
}

// Push adds value to the queue at the given priority.
func (pq *PriorityQueue) Push(value interface{}, priority int) {
	heap.Push(&pq.items, &Item{Value: value, Priority: priority, index: pq.seqNum})
	pq.seqNum++
}

// Pop removes and returns the highest-priority item, or nil if the queue is empty.
func (pq *PriorityQueue) Pop() interface{} {
	if pq.items.Len() == 0 {
		return nil
	}
	return heap.Pop(&pq.items).(*Item).Value
}

// Len returns the number of queued items.
func (pq *PriorityQueue) Len() int {
	return pq.items.Len()
}

type itemHeap []*Item

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	return h[i].index < h[j].index
}

func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x interface{}) {
	*h = append(*h, x.(*Item))
}

func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
