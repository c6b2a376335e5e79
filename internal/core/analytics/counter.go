// Package analytics computes derived statistics and time series over a
// complete immutable snapshot of normalized records. Each Compute* function
// is a single pass with no shared state between runs
package analytics

import "sort"

// CountEntry is one row of a frequency table
type CountEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// counter is a frequency table that remembers insertion order so that equal
// counts rank in first-seen order, matching the merge pipeline's ordering
// guarantees
type counter struct {
	keys []string
	vals map[string]int
}

func newCounter() *counter {
	return &counter{vals: make(map[string]int)}
}

func (c *counter) add(key string, n int) {
	if _, ok := c.vals[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.vals[key] += n
}

func (c *counter) get(key string) int { return c.vals[key] }

func (c *counter) len() int { return len(c.keys) }

func (c *counter) total() int {
	t := 0
	for _, v := range c.vals {
		t += v
	}
	return t
}

// entries returns all rows in insertion order
func (c *counter) entries() []CountEntry {
	out := make([]CountEntry, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, CountEntry{Key: k, Count: c.vals[k]})
	}
	return out
}

// top returns up to n rows sorted by count descending; ties keep insertion order
func (c *counter) top(n int) []CountEntry {
	out := c.entries()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// best returns the highest-count row, or false when empty
func (c *counter) best() (CountEntry, bool) {
	if len(c.keys) == 0 {
		return CountEntry{}, false
	}
	return c.top(1)[0], true
}

// merged returns a new counter holding the union of a and b
func merged(a, b *counter) *counter {
	out := newCounter()
	for _, e := range a.entries() {
		out.add(e.Key, e.Count)
	}
	for _, e := range b.entries() {
		out.add(e.Key, e.Count)
	}
	return out
}
