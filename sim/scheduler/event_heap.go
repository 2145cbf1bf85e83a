package scheduler

import (
	"container/heap"

	"github.com/hostsim/hostsim/sim/simtime"
)

// queued is an Event plus the key that orders it.
type queued struct {
	event Event
	time  simtime.EmulatedTime
	host  int
	seq   uint64
}

// EventHeap implements a priority queue with deterministic ordering.
// Ordering: time → host ID → per-host sequence number
type EventHeap struct {
	items []queued
}

// NewEventHeap creates a new event heap
func NewEventHeap() *EventHeap {
	h := &EventHeap{
		items: make([]queued, 0),
	}
	heap.Init(h)
	return h
}

// Len implements heap.Interface
func (h *EventHeap) Len() int {
	return len(h.items)
}

// Less implements heap.Interface with deterministic ordering
func (h *EventHeap) Less(i, j int) bool {
	qi, qj := h.items[i], h.items[j]

	// Primary: time (earlier first)
	if qi.time != qj.time {
		return qi.time.Before(qj.time)
	}

	// Secondary: host ID (lower first)
	if qi.host != qj.host {
		return qi.host < qj.host
	}

	// Tertiary: order in which the host scheduled them
	return qi.seq < qj.seq
}

// Swap implements heap.Interface
func (h *EventHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

// Push implements heap.Interface
func (h *EventHeap) Push(x interface{}) {
	h.items = append(h.items, x.(queued))
}

// Pop implements heap.Interface
func (h *EventHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[0 : n-1]
	return item
}

// schedule adds an event to the heap
func (h *EventHeap) schedule(q queued) {
	heap.Push(h, q)
}

// popNext removes and returns the next event
func (h *EventHeap) popNext() (queued, bool) {
	if h.Len() == 0 {
		return queued{}, false
	}
	return heap.Pop(h).(queued), true
}

// peek returns the next event without removing it
func (h *EventHeap) peek() (queued, bool) {
	if h.Len() == 0 {
		return queued{}, false
	}
	return h.items[0], true
}
