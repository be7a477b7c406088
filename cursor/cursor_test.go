package cursor

import (
	"errors"
	"testing"

	"github.com/openassistants/assistants-mcp-go/mcperr"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	states := []State{
		{Index: 0, Total: 0},
		{Index: 10, Total: 25},
		{Index: 25, Total: 25},
	}
	for _, s := range states {
		token := Encode(s)
		got, err := Decode(token)
		if err != nil {
			t.Fatalf("Decode(Encode(%+v)): %v", s, err)
		}
		if got.Index != s.Index || got.Total != s.Total {
			t.Errorf("round trip: want index=%d total=%d, got index=%d total=%d", s.Index, s.Total, got.Index, got.Total)
		}
		if got.Version != Version {
			t.Errorf("want version %d, got %d", Version, got.Version)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	tokens := []string{
		"not-a-real-cursor",
		"!!!!",
		"",
		Encode(State{Index: 5, Total: 25}) + "tampered",
	}
	for _, token := range tokens {
		if _, err := Decode(token); err == nil {
			t.Errorf("Decode(%q) should fail", token)
		} else {
			var ce *mcperr.CursorError
			if !errors.As(err, &ce) {
				t.Errorf("Decode(%q): want CursorError, got %T", token, err)
			}
		}
	}
}

func TestDecodeRejectsForeignVersion(t *testing.T) {
	// A token hand-built with an unknown version must be rejected, not
	// reinterpreted.
	s := State{Index: 1, Total: 2}
	token := Encode(s)
	decoded, _ := Decode(token)
	if decoded.Version != Version {
		t.Fatalf("sanity: expected version %d", Version)
	}

	if _, err := Decode("eyJ2Ijo5OSwiaSI6MCwibiI6MCwidHMiOjB9"); err == nil { // {"v":99,...}
		t.Error("unknown version should be rejected")
	}
}

func TestPaginateExhaustiveAndDisjoint(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	for _, pageSize := range []int{1, 3, 10, 25, 40} {
		var got []int
		var token *string
		pages := 0
		for {
			page, err := Paginate("numbers", items, token, pageSize)
			if err != nil {
				t.Fatalf("pageSize=%d: %v", pageSize, err)
			}
			got = append(got, page.Items...)
			pages++
			if page.NextCursor == nil {
				break
			}
			token = page.NextCursor
			if pages > len(items)+1 {
				t.Fatalf("pageSize=%d: pagination did not terminate", pageSize)
			}
		}
		if len(got) != len(items) {
			t.Fatalf("pageSize=%d: want %d items, got %d", pageSize, len(items), len(got))
		}
		for i, v := range got {
			if v != i {
				t.Fatalf("pageSize=%d: item %d out of order or duplicated: %d", pageSize, i, v)
			}
		}
	}
}

func TestPaginatePageShape(t *testing.T) {
	items := make([]string, 25)
	for i := range items {
		items[i] = string(rune('a' + i))
	}

	first, err := Paginate("letters", items, nil, 10)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Items) != 10 || first.NextCursor == nil {
		t.Fatalf("first page: want 10 items and a cursor, got %d items cursor=%v", len(first.Items), first.NextCursor)
	}

	second, err := Paginate("letters", items, first.NextCursor, 10)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Items) != 10 || second.NextCursor == nil {
		t.Fatalf("second page: want 10 items and a cursor, got %d items", len(second.Items))
	}

	third, err := Paginate("letters", items, second.NextCursor, 10)
	if err != nil {
		t.Fatalf("third page: %v", err)
	}
	if len(third.Items) != 5 {
		t.Errorf("third page: want 5 items, got %d", len(third.Items))
	}
	if third.NextCursor != nil {
		t.Error("third page: nextCursor must be absent at end of list")
	}
}

func TestPaginateRejectsStaleCursor(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	page, err := Paginate("numbers", items, nil, 2)
	if err != nil {
		t.Fatal(err)
	}

	// The listing changed size; the old cursor is foreign now.
	grown := append(items, 6)
	if _, err := Paginate("numbers", grown, page.NextCursor, 2); err == nil {
		t.Error("cursor from a different listing should be rejected")
	}
}

func TestPaginateRejectsCursorFromAnotherList(t *testing.T) {
	// Same length on both sides, so only the list identity can tell the
	// cursors apart.
	letters := []string{"a", "b", "c"}
	numbers := []int{1, 2, 3}

	page, err := Paginate("letters", letters, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if page.NextCursor == nil {
		t.Fatal("expected a cursor for the next page")
	}

	_, err = Paginate("numbers", numbers, page.NextCursor, 1)
	if err == nil {
		t.Fatal("cursor minted for one list must not page another")
	}
	var ce *mcperr.CursorError
	if !errors.As(err, &ce) {
		t.Errorf("want CursorError, got %T", err)
	}
}

func TestPaginateEmptySet(t *testing.T) {
	page, err := Paginate("numbers", []int(nil), nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if page.Items == nil {
		t.Error("Items must never be nil")
	}
	if page.NextCursor != nil {
		t.Error("empty set must not produce a cursor")
	}
}
