package cursor

import "github.com/openassistants/assistants-mcp-go/mcperr"

// Page represents a single page of results with an optional cursor for
// fetching the next page. Items is never nil.
type Page[T any] struct {
	Items      []T
	NextCursor *string
}

// Paginate slices one page out of a stable, fully ordered item set. The list
// name identifies the listing; issued cursors carry it and cursors minted for
// any other listing are rejected as foreign. A nil cursor requests the first
// page. NextCursor is set iff more items remain.
//
// Pages produced by following NextCursor are disjoint and collectively
// exhaustive as long as the underlying set is unchanged; a cursor issued
// against a listing of a different size is likewise rejected.
func Paginate[T any](list string, items []T, token *string, pageSize int) (Page[T], error) {
	if pageSize < 1 {
		pageSize = 1
	}

	start := 0
	if token != nil && *token != "" {
		s, err := Decode(*token)
		if err != nil {
			return Page[T]{}, err
		}
		if s.List != list {
			return Page[T]{}, &mcperr.CursorError{Reason: "cursor was issued by a different listing"}
		}
		if s.Total != len(items) {
			return Page[T]{}, &mcperr.CursorError{Reason: "cursor does not match this listing"}
		}
		start = s.Index
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	page := Page[T]{Items: make([]T, end-start)}
	copy(page.Items, items[start:end])

	if end < len(items) {
		next := Encode(State{List: list, Index: end, Total: len(items)})
		page.NextCursor = &next
	}
	return page, nil
}
