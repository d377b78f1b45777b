package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Extractor возвращает значение одного поля записи, по которому идёт поиск.
type Extractor[T any] func(T) string

type field[T any, K comparable] struct {
	target  K
	extract Extractor[T]
}

// Fields описывает поля сущности, доступные для поиска, и значение-"все поля".
type Fields[T any, K comparable] struct {
	all    K
	fields []field[T, K]
}

func NewFields[T any, K comparable](all K) *Fields[T, K] {
	return &Fields[T, K]{all: all}
}

// Add регистрирует поле. Порядок регистрации - порядок перебора для "все поля".
func (f *Fields[T, K]) Add(target K, fn Extractor[T]) *Fields[T, K] {
	f.fields = append(f.fields, field[T, K]{target: target, extract: fn})
	return f
}

func (f *Fields[T, K]) All() K {
	return f.all
}

// Targets returns the registered targets in registration order, without the sentinel.
func (f *Fields[T, K]) Targets() []K {
	out := make([]K, 0, len(f.fields))
	for _, fl := range f.fields {
		out = append(out, fl.target)
	}
	return out
}

// Match reports whether rec contains needle. needle must already be trimmed and lower-cased.
// An unregistered target falls back to matching any field.
func (f *Fields[T, K]) Match(rec T, needle string, target K) bool {
	if needle == "" {
		return true
	}
	if target != f.all {
		for _, fl := range f.fields {
			if fl.target == target {
				return contains(fl.extract(rec), needle)
			}
		}
	}
	for _, fl := range f.fields {
		if contains(fl.extract(rec), needle) {
			return true
		}
	}
	return false
}

func contains(hay, needle string) bool {
	return strings.Contains(lower(hay), needle)
}

// Caser не потокобезопасен, поэтому создаётся на каждый вызов.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Needle prepares the user's search text for Match.
func Needle(text string) string {
	return lower(strings.TrimSpace(text))
}
