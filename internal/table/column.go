// Package table decides which columns of a data table are shown for a viewport and
// produces the cell text for them.
package table

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mattn/go-runewidth"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

const Ellipsis = "…"

// Ширина считается без учёта локали терминала: неоднозначные символы занимают одну позицию.
var widths = &runewidth.Condition{StrictEmojiNeutral: true}

// Accessor produces the text of one cell.
type Accessor[T any] func(row T, rowIndex int) string

type Column[T any] struct {
	ID            string
	Header        string
	MinBreakpoint Breakpoint
	AlwaysShow    bool
	Value         Accessor[T]
	Render        Accessor[T]
	// MaxWidth ограничивает ширину ячейки в экранных позициях, 0 - без ограничения.
	MaxWidth int
	Align    Align
}

// Content returns Render, then Value, then the struct field named like the column id,
// and an empty string when none of them exists.
func (c Column[T]) Content(row T, rowIndex int) string {
	switch {
	case c.Render != nil:
		return c.Render(row, rowIndex)
	case c.Value != nil:
		return c.Value(row, rowIndex)
	}
	return fieldString(row, c.ID)
}

// Display is Content cut to MaxWidth with a trailing ellipsis.
func (c Column[T]) Display(row T, rowIndex int) string {
	s := c.Content(row, rowIndex)
	if c.MaxWidth <= 0 {
		return s
	}
	return widths.Truncate(s, c.MaxWidth, Ellipsis)
}

func (c Column[T]) Alignment() Align {
	if c.Align == "" {
		return AlignLeft
	}
	return c.Align
}

func fieldString(row any, id string) string {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		f := v.FieldByNameFunc(func(name string) bool { return strings.EqualFold(name, id) })
		if !f.IsValid() || !f.CanInterface() {
			return ""
		}
		return fmt.Sprint(f.Interface())
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return ""
		}
		e := v.MapIndex(reflect.ValueOf(id).Convert(v.Type().Key()))
		if !e.IsValid() {
			return ""
		}
		if e.Kind() == reflect.Interface && e.IsNil() {
			return ""
		}
		return fmt.Sprint(e.Interface())
	}
	return ""
}
