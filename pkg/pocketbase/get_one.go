package pocketbase

import (
	"context"
	"encoding/json"
	"net/url"
)

// GetOneBuilder fetches a single record by id into T.
type GetOneBuilder[T any] struct {
	col      *Collection
	recordID string
	expand   string
}

// GetOne starts a request for the record with the given id. Go methods cannot
// introduce type parameters, so the typed entry points are package-level
// functions taking the collection handle.
func GetOne[T any](col *Collection, recordID string) *GetOneBuilder[T] {
	return &GetOneBuilder[T]{col: col, recordID: recordID}
}

// Expand sets the relations to expand, e.g. "author,tags.category".
func (b *GetOneBuilder[T]) Expand(expand string) *GetOneBuilder[T] {
	b.expand = expand

	return b
}

// Call executes the request.
func (b *GetOneBuilder[T]) Call(ctx context.Context) (T, error) {
	var record T

	if b.col.err != nil {
		return record, b.col.err
	}

	query := url.Values{}
	if b.expand != "" {
		query.Set("expand", b.expand)
	}

	resp, err := b.col.client.http.Get(ctx, b.col.recordPath(b.recordID), query)
	if err != nil {
		return record, wrapTransport(err)
	}

	if resp.StatusCode/100 != 2 {
		return record, classify(readStatuses, resp)
	}

	if err := json.Unmarshal(resp.Body, &record); err != nil {
		return record, &ParseError{Err: err}
	}

	return record, nil
}
