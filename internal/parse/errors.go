// Package parse converts raw dataset cells into typed values.
package parse

import "fmt"

// Kind names the parser that rejected a cell.
type Kind string

const (
	KindDate      Kind = "date"
	KindMagnitude Kind = "magnitude"
	KindList      Kind = "list"
)

// Error reports a cell that could not be parsed.
type Error struct {
	Kind  Kind
	Input string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Kind, truncate(e.Input, 60), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
