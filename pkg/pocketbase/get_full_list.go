package pocketbase

import (
	"context"

	"github.com/fromhorizons/pocketbase-go/internal/constants"
)

// GetFullListBuilder fetches every record of a collection by walking pages of
// BatchSize with skipTotal until a short page arrives.
type GetFullListBuilder[T any] struct {
	col       *Collection
	batchSize int
	sort      string
	filter    string
	expand    string
}

// GetFullList starts a request for all records in the collection.
func GetFullList[T any](col *Collection) *GetFullListBuilder[T] {
	return &GetFullListBuilder[T]{col: col, batchSize: constants.MaxPerPage}
}

// BatchSize sets the per-request page size. Defaults to 500, the server
// maximum; larger values are capped.
func (b *GetFullListBuilder[T]) BatchSize(size int) *GetFullListBuilder[T] {
	b.batchSize = size

	return b
}

// Sort sets the sort expression.
func (b *GetFullListBuilder[T]) Sort(sort string) *GetFullListBuilder[T] {
	b.sort = sort

	return b
}

// Filter sets the filter expression.
func (b *GetFullListBuilder[T]) Filter(filter string) *GetFullListBuilder[T] {
	b.filter = filter

	return b
}

// Expand sets the relations to expand.
func (b *GetFullListBuilder[T]) Expand(expand string) *GetFullListBuilder[T] {
	b.expand = expand

	return b
}

// Call walks the pages. Results are accumulated in order; the loop stops when
// a page returns fewer items than the batch size, which for collections whose
// size is an exact multiple of the batch size means one final empty page.
func (b *GetFullListBuilder[T]) Call(ctx context.Context) ([]T, error) {
	if b.col.err != nil {
		return nil, b.col.err
	}

	batchSize := b.batchSize
	if batchSize <= 0 || batchSize > constants.MaxPerPage {
		batchSize = constants.MaxPerPage
	}

	var records []T

	for page := 1; ; page++ {
		list, err := GetList[T](b.col).
			Page(page).
			PerPage(batchSize).
			Sort(b.sort).
			Filter(b.filter).
			Expand(b.expand).
			SkipTotal().
			Call(ctx)
		if err != nil {
			return nil, err
		}

		records = append(records, list.Items...)

		if len(list.Items) < batchSize {
			return records, nil
		}
	}
}
