package pagination

import (
	"testing"

	"github.com/nanokusa/go-shop-catalog/internal/status"
)

func i64(v int64) *int64 { return &v }
func i32(v int32) *int32 { return &v }

func TestResolveWindowDefaults(t *testing.T) {
	win, empty, err := ResolveWindow(Option{}, 1000)
	if err != nil || empty {
		t.Fatalf("unexpected empty=%v err=%v", empty, err)
	}
	if win.Start != 1 || win.End != DefaultLimit {
		t.Errorf("window = [%d, %d], want [1, %d]", win.Start, win.End, DefaultLimit)
	}
}

func TestResolveWindowAfter(t *testing.T) {
	win, empty, err := ResolveWindow(Option{After: i64(10)}, 1000)
	if err != nil || empty {
		t.Fatalf("unexpected empty=%v err=%v", empty, err)
	}
	if win.Start != 11 || win.End != 110 {
		t.Errorf("window = [%d, %d], want [11, 110]", win.Start, win.End)
	}
}

func TestResolveWindowAfterSaturates(t *testing.T) {
	// paging past the end is a natural stop, not an error
	for _, after := range []int64{42, 43, 1 << 40} {
		_, empty, err := ResolveWindow(Option{After: i64(after)}, 42)
		if err != nil {
			t.Errorf("after=%d: unexpected error %v", after, err)
		}
		if !empty {
			t.Errorf("after=%d: expected empty page", after)
		}
	}
}

func TestResolveWindowBeforeOutOfRange(t *testing.T) {
	for _, before := range []int64{0, -1} {
		_, _, err := ResolveWindow(Option{Before: i64(before)}, 42)
		if status.CodeOf(err) != status.CodeOutOfRange {
			t.Errorf("before=%d: code = %d, want CodeOutOfRange", before, status.CodeOf(err))
		}
	}
}

func TestResolveWindowBefore(t *testing.T) {
	win, empty, err := ResolveWindow(Option{Before: i64(20)}, 1000)
	if err != nil || empty {
		t.Fatalf("unexpected empty=%v err=%v", empty, err)
	}
	if win.Start != 1 || win.End != 19 {
		t.Errorf("window = [%d, %d], want [1, 19]", win.Start, win.End)
	}
}

func TestResolveWindowBothCursors(t *testing.T) {
	win, empty, err := ResolveWindow(Option{After: i64(5), Before: i64(9)}, 1000)
	if err != nil || empty {
		t.Fatalf("unexpected empty=%v err=%v", empty, err)
	}
	// exclusive cursors: rows strictly between them
	if win.Start != 6 || win.End != 8 {
		t.Errorf("window = [%d, %d], want [6, 8]", win.Start, win.End)
	}
}

func TestResolveWindowAdjacentCursorsEmpty(t *testing.T) {
	_, empty, err := ResolveWindow(Option{After: i64(5), Before: i64(6)}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if !empty {
		t.Error("no ids lie strictly between adjacent cursors")
	}
}

func rows(ids ...int64) []int64 { return ids }

func cursorOf(v int64) int64 { return v }

func TestPaginateFirst(t *testing.T) {
	conn := Paginate(Option{First: i32(2)}, rows(1, 2, 3, 4), cursorOf)
	if len(conn.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(conn.Edges))
	}
	if conn.Edges[0].Cursor != 1 || conn.Edges[1].Cursor != 2 {
		t.Errorf("cursors = %d, %d", conn.Edges[0].Cursor, conn.Edges[1].Cursor)
	}
	if !conn.HasNextPage || conn.HasPreviousPage {
		t.Errorf("flags = next:%v prev:%v, want next only", conn.HasNextPage, conn.HasPreviousPage)
	}
}

func TestPaginateLast(t *testing.T) {
	conn := Paginate(Option{Last: i32(2)}, rows(1, 2, 3, 4), cursorOf)
	if len(conn.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(conn.Edges))
	}
	if conn.Edges[0].Cursor != 3 || conn.Edges[1].Cursor != 4 {
		t.Errorf("cursors = %d, %d", conn.Edges[0].Cursor, conn.Edges[1].Cursor)
	}
	if conn.HasNextPage || !conn.HasPreviousPage {
		t.Errorf("flags = next:%v prev:%v, want prev only", conn.HasNextPage, conn.HasPreviousPage)
	}
}

func TestPaginateFirstWinsOverLast(t *testing.T) {
	conn := Paginate(Option{First: i32(1), Last: i32(1)}, rows(1, 2, 3), cursorOf)
	if len(conn.Edges) != 1 || conn.Edges[0].Cursor != 1 {
		t.Errorf("edges = %+v, want the first row", conn.Edges)
	}
}

func TestPaginateNoTruncation(t *testing.T) {
	conn := Paginate(Option{First: i32(10)}, rows(1, 2, 3), cursorOf)
	if len(conn.Edges) != 3 {
		t.Fatalf("edges = %d, want 3", len(conn.Edges))
	}
	if conn.HasNextPage || conn.HasPreviousPage {
		t.Error("no page flags when nothing was cut")
	}
}

func TestPaginateEmpty(t *testing.T) {
	conn := Paginate(Option{}, rows(), cursorOf)
	if len(conn.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(conn.Edges))
	}
	if conn.HasNextPage || conn.HasPreviousPage {
		t.Error("empty page has no neighbors")
	}
}
