package aggregators

import (
	"container/heap"
	"sort"

	"access-summary/internal/models"
)

type slowRequestItem struct {
	latency float64
	seq     uint64
	request models.SlowRequest
}

// slowRequestHeap is a min-heap on (latency, seq) holding the slowest requests seen.
type slowRequestHeap []*slowRequestItem

func (h slowRequestHeap) Len() int { return len(h) }

func (h slowRequestHeap) Less(i, j int) bool {
	if h[i].latency != h[j].latency {
		return h[i].latency < h[j].latency
	}
	return h[i].seq < h[j].seq
}

func (h slowRequestHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *slowRequestHeap) Push(x any) { *h = append(*h, x.(*slowRequestItem)) }

func (h *slowRequestHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// slowRequestTracker keeps the capacity largest latencies in O(log capacity) per offer.
type slowRequestTracker struct {
	capacity int
	seq      uint64
	items    slowRequestHeap
}

func newSlowRequestTracker(capacity int) *slowRequestTracker {
	return &slowRequestTracker{capacity: capacity, items: make(slowRequestHeap, 0, capacity)}
}

func (t *slowRequestTracker) offer(latency float64, request models.SlowRequest) {
	t.seq++
	item := &slowRequestItem{latency: latency, seq: t.seq, request: request}
	if len(t.items) < t.capacity {
		heap.Push(&t.items, item)
		return
	}
	// Equal latencies never evict: the earlier request keeps its slot
	if t.capacity > 0 && latency > t.items[0].latency {
		t.items[0] = item
		heap.Fix(&t.items, 0)
	}
}

// result returns the retained requests by latency descending, ties by arrival order.
func (t *slowRequestTracker) result() []models.SlowRequest {
	items := make([]*slowRequestItem, len(t.items))
	copy(items, t.items)
	sort.Slice(items, func(i, j int) bool {
		if items[i].latency != items[j].latency {
			return items[i].latency > items[j].latency
		}
		return items[i].seq < items[j].seq
	})

	requests := make([]models.SlowRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, item.request)
	}
	return requests
}
