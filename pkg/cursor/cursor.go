// Package cursor provides a peekable cursor over a finite sequence and the
// pairwise iterators used to turn point chains into edges.
//
// Reaching the end of input is an ordinary condition, reported by the
// boolean result of [Cursor.Peek] and [Cursor.Advance]:
//
//	c := cursor.New(lines)
//	for {
//	    l, ok := c.Advance()
//	    if !ok {
//	        break
//	    }
//	    ...
//	}
package cursor

import (
	"iter"
	"strings"
)

// Cursor walks a slice front to back, allowing a look at the next element
// without consuming it.
type Cursor[T any] struct {
	items []T
	pos   int
}

// New returns a cursor positioned before the first element of items.
func New[T any](items []T) *Cursor[T] {
	return &Cursor[T]{items: items}
}

// Peek returns the next element without consuming it.
func (c *Cursor[T]) Peek() (T, bool) {
	if c.pos >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[c.pos], true
}

// Advance consumes and returns the next element.
func (c *Cursor[T]) Advance() (T, bool) {
	v, ok := c.Peek()
	if ok {
		c.pos++
	}
	return v, ok
}

// Done reports whether every element has been consumed.
func (c *Cursor[T]) Done() bool { return c.pos >= len(c.items) }

// Pos returns the number of consumed elements.
func (c *Cursor[T]) Pos() int { return c.pos }

// Remaining returns the number of elements not yet consumed.
func (c *Cursor[T]) Remaining() int { return len(c.items) - c.pos }

// Line is one line of a text document with its 1-based line number.
type Line struct {
	Num  int
	Text string
}

// Blank reports whether the line holds nothing but whitespace.
func (l Line) Blank() bool { return strings.TrimSpace(l.Text) == "" }

// Fields splits the line on whitespace.
func (l Line) Fields() []string { return strings.Fields(l.Text) }

// Lines splits content at line boundaries. A trailing line break does not
// start another line and carriage returns before a line feed are dropped.
func Lines(content []byte) []Line {
	text := string(content)
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	raw := strings.Split(text, "\n")
	out := make([]Line, len(raw))
	for i, s := range raw {
		out[i] = Line{Num: i + 1, Text: strings.TrimSuffix(s, "\r")}
	}
	return out
}

// NewLines returns a cursor over the lines of content.
func NewLines(content []byte) *Cursor[Line] {
	return New(Lines(content))
}

// SkipBlank consumes blank lines and reports whether a non-blank line
// follows.
func SkipBlank(c *Cursor[Line]) bool {
	for {
		l, ok := c.Peek()
		if !ok {
			return false
		}
		if !l.Blank() {
			return true
		}
		c.Advance()
	}
}

// Pairs yields each pair of subsequent elements: (s0, s1), (s1, s2), ...
// Slices with fewer than two elements yield nothing.
func Pairs[T any](s []T) iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		for i := 1; i < len(s); i++ {
			if !yield(s[i-1], s[i]) {
				return
			}
		}
	}
}

// CyclicPairs is like Pairs but also yields the closing pair (last, first).
// Slices with fewer than two elements yield nothing.
func CyclicPairs[T any](s []T) iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		if len(s) < 2 {
			return
		}
		for a, b := range Pairs(s) {
			if !yield(a, b) {
				return
			}
		}
		yield(s[len(s)-1], s[0])
	}
}
