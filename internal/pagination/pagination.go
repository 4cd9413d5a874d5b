// Package pagination implements relay-style, bidirectional cursor
// pagination over an ordered integer-id space. Cursors are the entity ids
// themselves, so paging is restartable and never duplicates or skips rows
// for a stable underlying id sequence.
package pagination

import (
	"fmt"

	"github.com/nanokusa/go-shop-catalog/internal/status"
)

// DefaultLimit caps the number of rows loaded when no upper cursor bounds
// the window.
const DefaultLimit int64 = 100

// Option carries the caller's cursor arguments. After and Before are
// exclusive cursors; First and Last are mutually exclusive page sizes and
// First wins when both are set.
type Option struct {
	After  *int64
	Before *int64
	First  *int32
	Last   *int32
}

// Window is the inclusive [Start, End] id range to load.
type Window struct {
	Start int64
	End   int64
}

// ResolveWindow turns cursor options into an id window against the current
// maximum id. The two out-of-range boundaries are intentionally asymmetric:
// an After at or past maxID saturates to an empty page with no error, while
// a Before <= 0 fails with OutOfRange.
func ResolveWindow(opt Option, maxID int64) (Window, bool, error) {
	start := int64(1)
	end := start + DefaultLimit - 1
	if opt.After != nil {
		if *opt.After >= maxID {
			return Window{}, true, nil
		}
		start = *opt.After + 1
		end = start + DefaultLimit - 1
	}
	if opt.Before != nil {
		if *opt.Before <= 0 {
			return Window{}, false, status.OutOfRange("before", fmt.Sprintf("[1, %d]", maxID))
		}
		end = *opt.Before - 1
	}
	if end < start {
		return Window{}, true, nil
	}
	return Window{Start: start, End: end}, false, nil
}

// Edge pairs a row with its opaque cursor (the row id).
type Edge[T any] struct {
	Cursor int64 `json:"cursor"`
	Node   T     `json:"node"`
}

// Connection is one page of rows plus the flags callers use to keep paging.
type Connection[T any] struct {
	Edges           []Edge[T] `json:"edges"`
	HasNextPage     bool      `json:"has_next_page"`
	HasPreviousPage bool      `json:"has_previous_page"`
}

// Paginate applies First/Last truncation to rows already loaded for the
// resolved window. rows must be ordered by ascending id; cursorOf extracts
// the id used as the edge cursor.
func Paginate[T any](opt Option, rows []T, cursorOf func(T) int64) Connection[T] {
	edges := make([]Edge[T], 0, len(rows))
	for _, r := range rows {
		edges = append(edges, Edge[T]{Cursor: cursorOf(r), Node: r})
	}
	conn := Connection[T]{Edges: edges}
	switch {
	case opt.First != nil:
		if n := int(*opt.First); n >= 0 && n < len(conn.Edges) {
			conn.Edges = conn.Edges[:n]
			conn.HasNextPage = true
		}
	case opt.Last != nil:
		if n := int(*opt.Last); n >= 0 && n < len(conn.Edges) {
			conn.Edges = conn.Edges[len(conn.Edges)-n:]
			conn.HasPreviousPage = true
		}
	}
	return conn
}
