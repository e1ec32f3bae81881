// Package task defines the task and filter types shared by the store and
// its presentation layers.
package task

import (
	"errors"
	"strings"
	"time"
)

// Task represents a single to-do item.
type Task struct {
	ID        int64
	Text      string // raw, never pre-escaped
	Completed bool
	CreatedAt time.Time
}

// Filter selects which tasks a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the recognized filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ErrUnknownFilter is returned for a filter name outside Filters.
var ErrUnknownFilter = errors.New("unknown filter")

// ParseFilter resolves a filter name (case-insensitive, trimmed).
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", ErrUnknownFilter
	}
	return f, nil
}

// Valid reports whether f is one of the recognized filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Match reports whether t is visible under f.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}
