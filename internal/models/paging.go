package models

// Paging is the offset-based paging envelope. Next and Previous are null at the ends;
// callers fetch adjacent pages by reissuing the request with a new offset.
type Paging[T any] struct {
	Href     string  `json:"href"`
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Next     *string `json:"next"`
	Offset   int     `json:"offset"`
	Previous *string `json:"previous"`
	Total    int     `json:"total"`
}

// HasNext reports whether a following page exists.
func (p Paging[T]) HasNext() bool { return p.Next != nil && *p.Next != "" }

// NextOffset returns the offset of the following page.
func (p Paging[T]) NextOffset() int { return p.Offset + len(p.Items) }

// Cursor holds the keys used to find adjacent pages of a [CursorPaging].
type Cursor struct {
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`
}

// CursorPaging is the cursor-based paging envelope used by recently played and followed artists.
type CursorPaging[T any] struct {
	Href    string  `json:"href"`
	Items   []T     `json:"items"`
	Limit   int     `json:"limit"`
	Next    *string `json:"next"`
	Cursors Cursor  `json:"cursors"`
	Total   *int    `json:"total,omitempty"`
}

// HasNext reports whether a following page exists.
func (p CursorPaging[T]) HasNext() bool { return p.Next != nil && *p.Next != "" }
