package query

import (
	"fmt"
	"sync"
)

// Collection - хранилище записей одной сущности на всё время жизни процесса.
// Записи хранятся по значению: наружу уходят только копии.
type Collection[T Record, K comparable] struct {
	mu     sync.RWMutex
	fields *Fields[T, K]
	seed   []T
	items  []T
	nextID int
}

func NewCollection[T Record, K comparable](fields *Fields[T, K], seed []T) *Collection[T, K] {
	c := &Collection[T, K]{fields: fields}
	c.Init(seed)
	return c
}

// Init replaces the contents with seed and remembers it for Reset.
func (c *Collection[T, K]) Init(seed []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seed = clone(seed)
	c.load()
}

// Reset restores the seed passed to the last Init.
func (c *Collection[T, K]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
}

// load must be called with mu held. nextID only ever grows, so an id handed out before a
// Reset is never reused.
func (c *Collection[T, K]) load() {
	c.items = clone(c.seed)
	for _, it := range c.items {
		if it.RecordID() >= c.nextID {
			c.nextID = it.RecordID() + 1
		}
	}
	if c.nextID < 1 {
		c.nextID = 1
	}
}

func (c *Collection[T, K]) Fields() *Fields[T, K] {
	return c.fields
}

func (c *Collection[T, K]) Query(p Params[K]) (Page[T], error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Run(c.items, c.fields, p)
}

func (c *Collection[T, K]) Get(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Create assigns the next free id, builds the record with it and puts it in front.
func (c *Collection[T, K]) Create(build func(id int) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	rec := build(id)
	if rec.RecordID() != id {
		panic(fmt.Sprintf("query: record built for id %d reports id %d", id, rec.RecordID()))
	}
	c.nextID++

	items := make([]T, 0, len(c.items)+1)
	items = append(items, rec)
	c.items = append(items, c.items...)
	return rec
}

// Update replaces the record with patch(record). Unknown id is a no-op and returns false.
func (c *Collection[T, K]) Update(id int, patch func(T) T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	next := patch(c.items[i])
	if next.RecordID() != id {
		panic(fmt.Sprintf("query: patch changed id %d to %d", id, next.RecordID()))
	}
	c.items[i] = next
	return next, true
}

func (c *Collection[T, K]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Snapshot returns a copy of the records in storage order.
func (c *Collection[T, K]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.items)
}

func (c *Collection[T, K]) index(id int) int {
	for i := range c.items {
		if c.items[i].RecordID() == id {
			return i
		}
	}
	return -1
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
