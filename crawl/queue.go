// Package crawl: BFS queue with deduplication.
// Maintains a visited set so no document is processed twice, and records
// how many links away from the start each document was found.
package crawl

// Item is a queued document and its distance from the start.
type Item struct {
	Location string
	Depth    int
}

// Queue is a BFS queue with location deduplication.
type Queue struct {
	items   []Item
	visited map[string]bool
	idx     int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues a location if it hasn't been seen before. It reports whether
// the location was added.
func (q *Queue) Add(location string, depth int) bool {
	if q.visited[location] {
		return false
	}
	q.visited[location] = true
	q.items = append(q.items, Item{Location: location, Depth: depth})
	return true
}

// HasNext returns true if there are unprocessed locations.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed item and advances the pointer.
func (q *Queue) Next() Item {
	item := q.items[q.idx]
	q.idx++
	return item
}

// Visited returns the total number of unique locations seen.
func (q *Queue) Visited() int {
	return len(q.visited)
}

// All returns all discovered locations in BFS order.
func (q *Queue) All() []string {
	out := make([]string, len(q.items))
	for i, it := range q.items {
		out[i] = it.Location
	}
	return out
}
