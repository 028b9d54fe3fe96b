package pocketbase

import (
	"context"
	"errors"
)

// GetFirstListItemBuilder fetches the first record matching a filter.
type GetFirstListItemBuilder[T any] struct {
	col    *Collection
	sort   string
	filter string
	expand string
}

// GetFirstListItem starts a request for the first matching record. It is a
// list request forced to page 1, perPage 1 and skipTotal, so a match comes
// back with a single row fetched.
func GetFirstListItem[T any](col *Collection, filter string) *GetFirstListItemBuilder[T] {
	return &GetFirstListItemBuilder[T]{col: col, filter: filter}
}

// Sort sets the sort expression, deciding which match is "first".
func (b *GetFirstListItemBuilder[T]) Sort(sort string) *GetFirstListItemBuilder[T] {
	b.sort = sort

	return b
}

// Expand sets the relations to expand.
func (b *GetFirstListItemBuilder[T]) Expand(expand string) *GetFirstListItemBuilder[T] {
	b.expand = expand

	return b
}

// Call executes the request. No matching record is a ParseError: the server
// answers 200 with an empty page, not 404.
func (b *GetFirstListItemBuilder[T]) Call(ctx context.Context) (T, error) {
	var record T

	list, err := GetList[T](b.col).
		Page(1).
		PerPage(1).
		Sort(b.sort).
		Filter(b.filter).
		Expand(b.expand).
		SkipTotal().
		Call(ctx)
	if err != nil {
		return record, err
	}

	if len(list.Items) == 0 {
		return record, &ParseError{Err: errors.New("no items in the response")}
	}

	return list.Items[0], nil
}
