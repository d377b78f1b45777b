// Package query implements search, ordering and pagination over in-memory record collections.
package query

import (
	"cmp"
	"slices"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Record - любая сущность с целочисленным идентификатором.
type Record interface {
	RecordID() int
}

type Params[K comparable] struct {
	Page     int
	PageSize int
	Text     string
	Target   K
}

type Page[T any] struct {
	Items    []T
	Page     int
	PageSize int
	Total    int
}

// DefaultParams returns the parameters used when a caller omits everything.
func DefaultParams[T any, K comparable](fields *Fields[T, K]) Params[K] {
	return Params[K]{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Target:   fields.All(),
	}
}

func (p Params[K]) validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}
	if p.PageSize < 1 {
		return ErrInvalidPageSize
	}
	return nil
}

// Run filters items by p.Text/p.Target, orders them by descending id and cuts out page p.Page.
// items is not modified. A page past the end yields no items and no error.
func Run[T Record, K comparable](items []T, fields *Fields[T, K], p Params[K]) (Page[T], error) {
	if err := p.validate(); err != nil {
		return Page[T]{}, err
	}

	needle := Needle(p.Text)
	filtered := make([]T, 0, len(items))
	for _, it := range items {
		if fields.Match(it, needle, p.Target) {
			filtered = append(filtered, it)
		}
	}

	slices.SortFunc(filtered, func(a, b T) int {
		return cmp.Compare(b.RecordID(), a.RecordID())
	})

	total := len(filtered)
	start := (p.Page - 1) * p.PageSize
	// отдельная проверка, чтобы не переполнить int на огромных page
	if p.Page-1 > total/p.PageSize {
		start = total
	}
	start = min(start, total)
	end := start + min(p.PageSize, total-start)

	page := make([]T, end-start)
	copy(page, filtered[start:end])

	return Page[T]{
		Items:    page,
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    total,
	}, nil
}
