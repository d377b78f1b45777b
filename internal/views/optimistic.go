package views

import (
	"sync"

	"github.com/glekoz/rvdesk/internal/query"
)

type State int

const (
	StatePending State = iota
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled back"
	}
	return "unknown"
}

// Page - копия полученной страницы на стороне клиента. Изменения видны сразу,
// а подтверждаются или откатываются после ответа сервера.
type Page[T query.Record] struct {
	mu       sync.Mutex
	items    []T
	page     int
	pageSize int
	total    int
}

func NewPage[T query.Record](p query.Page[T]) *Page[T] {
	items := make([]T, len(p.Items))
	copy(items, p.Items)
	return &Page[T]{items: items, page: p.Page, pageSize: p.PageSize, total: p.Total}
}

// Snapshot returns the page as currently displayed, tentative values included.
func (p *Page[T]) Snapshot() query.Page[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	items := make([]T, len(p.items))
	copy(items, p.items)
	return query.Page[T]{Items: items, Page: p.page, PageSize: p.pageSize, Total: p.total}
}

// Apply shows patch(row) in place of the row with id. It returns false when the row
// is not on the page.
func (p *Page[T]) Apply(id int, patch func(T) T) (*Pending[T], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.items {
		if p.items[i].RecordID() != id {
			continue
		}
		prev := p.items[i]
		p.items[i] = patch(prev)
		return &Pending[T]{page: p, id: id, prev: prev}, true
	}
	return nil, false
}

func (p *Page[T]) restore(id int, prev T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.items {
		if p.items[i].RecordID() == id {
			p.items[i] = prev
			return
		}
	}
}

// Pending is one tentative change waiting for the server's answer.
type Pending[T query.Record] struct {
	mu    sync.Mutex
	page  *Page[T]
	id    int
	prev  T
	state State
}

func (pd *Pending[T]) State() State {
	pd.mu.Lock()
	defer pd.mu.Unlock()
	return pd.state
}

// Previous is the row as it was before Apply.
func (pd *Pending[T]) Previous() T {
	return pd.prev
}

// Settle commits the change when err is nil and restores the previous row otherwise.
// Only the first call has an effect.
func (pd *Pending[T]) Settle(err error) State {
	pd.mu.Lock()
	defer pd.mu.Unlock()

	if pd.state != StatePending {
		return pd.state
	}
	if err == nil {
		pd.state = StateCommitted
		return pd.state
	}
	pd.page.restore(pd.id, pd.prev)
	pd.state = StateRolledBack
	return pd.state
}
