package aggregators

import "sort"

// counter tallies string keys and ranks them by count descending, ties by first
// appearance.
type counter struct {
	index  map[string]int
	keys   []string
	counts []int64
}

type counterEntry struct {
	key   string
	count int64
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) inc(key string) {
	if i, ok := c.index[key]; ok {
		c.counts[i]++
		return
	}
	c.index[key] = len(c.keys)
	c.keys = append(c.keys, key)
	c.counts = append(c.counts, 1)
}

func (c *counter) len() int {
	return len(c.keys)
}

// top returns at most n entries; n <= 0 returns all of them.
func (c *counter) top(n int) []counterEntry {
	order := make([]int, len(c.keys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return c.counts[order[a]] > c.counts[order[b]]
	})
	if n > 0 && n < len(order) {
		order = order[:n]
	}

	entries := make([]counterEntry, 0, len(order))
	for _, i := range order {
		entries = append(entries, counterEntry{key: c.keys[i], count: c.counts[i]})
	}
	return entries
}

// mostCommon returns the highest ranked entry.
func (c *counter) mostCommon() (counterEntry, bool) {
	if len(c.keys) == 0 {
		return counterEntry{}, false
	}
	best := 0
	for i := 1; i < len(c.counts); i++ {
		if c.counts[i] > c.counts[best] {
			best = i
		}
	}
	return counterEntry{key: c.keys[best], count: c.counts[best]}, true
}
