package pocketbase

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/fromhorizons/pocketbase-go/internal/constants"
)

// GetListBuilder fetches one page of records into a RecordList[T].
type GetListBuilder[T any] struct {
	col       *Collection
	page      int
	perPage   int
	sort      string
	filter    string
	expand    string
	skipTotal bool
}

// GetList starts a paginated list request. Parameters left unset are omitted
// from the query so the server defaults apply (page 1, 30 per page).
func GetList[T any](col *Collection) *GetListBuilder[T] {
	return &GetListBuilder[T]{col: col}
}

// Page sets the 1-based page number.
func (b *GetListBuilder[T]) Page(page int) *GetListBuilder[T] {
	b.page = page

	return b
}

// PerPage sets the page size. The server caps it at 500.
func (b *GetListBuilder[T]) PerPage(perPage int) *GetListBuilder[T] {
	b.perPage = perPage

	return b
}

// Sort sets the sort expression, e.g. "-created,title".
func (b *GetListBuilder[T]) Sort(sort string) *GetListBuilder[T] {
	b.sort = sort

	return b
}

// Filter sets the filter expression, e.g. "status = true".
func (b *GetListBuilder[T]) Filter(filter string) *GetListBuilder[T] {
	b.filter = filter

	return b
}

// Expand sets the relations to expand.
func (b *GetListBuilder[T]) Expand(expand string) *GetListBuilder[T] {
	b.expand = expand

	return b
}

// SkipTotal asks the server to skip the totals count; TotalItems and
// TotalPages come back as -1, in exchange for a cheaper query.
func (b *GetListBuilder[T]) SkipTotal() *GetListBuilder[T] {
	b.skipTotal = true

	return b
}

// Call executes the request.
func (b *GetListBuilder[T]) Call(ctx context.Context) (*RecordList[T], error) {
	if b.col.err != nil {
		return nil, b.col.err
	}

	query := url.Values{}

	if b.page > 0 {
		query.Set("page", strconv.Itoa(b.page))
	}

	if b.perPage > 0 {
		perPage := b.perPage
		if perPage > constants.MaxPerPage {
			perPage = constants.MaxPerPage
		}

		query.Set("perPage", strconv.Itoa(perPage))
	}

	if b.sort != "" {
		query.Set("sort", b.sort)
	}

	if b.filter != "" {
		query.Set("filter", b.filter)
	}

	if b.expand != "" {
		query.Set("expand", b.expand)
	}

	if b.skipTotal {
		query.Set("skipTotal", "true")
	}

	resp, err := b.col.client.http.Get(ctx, b.col.recordsPath(), query)
	if err != nil {
		return nil, wrapTransport(err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, classify(readStatuses, resp)
	}

	var list RecordList[T]
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, &ParseError{Err: err}
	}

	return &list, nil
}
