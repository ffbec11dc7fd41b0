package keywords

import (
	"slices"

	"go-seo-analyzer/pkg/models"
)

// Counter tallies tokens and remembers the order in which each was first seen.
// MostCommon breaks ties by that order.
type Counter struct {
	counts map[string]int
	order  []string
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

func (c *Counter) Add(token string) {
	if _, seen := c.counts[token]; !seen {
		c.order = append(c.order, token)
	}
	c.counts[token]++
}

func (c *Counter) Count(token string) int {
	return c.counts[token]
}

// Len is the number of distinct tokens.
func (c *Counter) Len() int {
	return len(c.order)
}

// Total is the number of tokens added.
func (c *Counter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Map returns a copy of the counts.
func (c *Counter) Map() map[string]int {
	m := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		m[k] = v
	}
	return m
}

// MostCommon returns at most n entries sorted by descending count. n <= 0
// returns every entry.
func (c *Counter) MostCommon(n int) []models.TermCount {
	rows := make([]models.TermCount, 0, len(c.order))
	for _, token := range c.order {
		rows = append(rows, models.TermCount{Term: token, Count: c.counts[token]})
	}
	slices.SortStableFunc(rows, func(a, b models.TermCount) int {
		return b.Count - a.Count
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
