package services

import "sort"

// orderedCounter counts string occurrences while remembering first-seen
// order, so Top is deterministic when counts tie.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

// Add counts one occurrence of key.
func (c *orderedCounter) Add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Count returns how many times key was added.
func (c *orderedCounter) Count(key string) int {
	return c.counts[key]
}

// Top returns up to n keys by descending count. Ties keep first-seen
// order.
func (c *orderedCounter) Top(n int) []string {
	if n <= 0 || len(c.order) == 0 {
		return nil
	}

	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})

	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
