package notion

import (
	"context"
)

// PageFetcher fetches one page of results. cursor is nil for the first page
// and the previous page's NextCursor afterwards.
type PageFetcher[T any] func(ctx context.Context, cursor *string) (*ListResponse[T], error)

// CollectAll eagerly drains every page in order, calling fetch exactly once
// per page with the previous page's cursor, and concatenates the results.
// Iteration stops when a page reports HasMore=false; a fetch failure aborts
// the whole operation with that error.
func CollectAll[T any](ctx context.Context, fetch PageFetcher[T]) ([]T, error) {
	if fetch == nil {
		return nil, ErrNilFetcher
	}

	var (
		all    []T
		cursor *string
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}

		all = append(all, page.Results...)

		cursor = page.continuationCursor()
		if cursor == nil {
			return all, nil
		}
	}
}

// PaginationIterator provides item-level lazy iteration over a paginated
// endpoint. It fetches a page only when the buffered one is exhausted and the
// previous page reported more results.
//
// The iterator is forward-only, single-pass, and not safe for concurrent use
// by more than one consumer.
type PaginationIterator[T any] struct {
	ctx     context.Context
	fetch   PageFetcher[T]
	buffer  []T
	pos     int
	cursor  *string
	hasMore bool
	started bool
	err     error
}

// NewPaginationIterator creates an iterator over fetch. No request is made
// until the first HasNext or Next call.
func NewPaginationIterator[T any](ctx context.Context, fetch PageFetcher[T]) *PaginationIterator[T] {
	return &PaginationIterator[T]{
		ctx:   ctx,
		fetch: fetch,
	}
}

// advance fetches the next page into the buffer. Called only at a page
// boundary: before the first fetch, or after the buffer is drained while the
// previous page reported HasMore.
func (it *PaginationIterator[T]) advance() {
	if it.fetch == nil {
		it.err = ErrNilFetcher

		return
	}

	if err := it.ctx.Err(); err != nil {
		it.err = err

		return
	}

	page, err := it.fetch(it.ctx, it.cursor)
	if err != nil {
		it.err = err

		return
	}

	it.started = true
	it.buffer = page.Results
	it.pos = 0
	it.cursor = page.continuationCursor()
	it.hasMore = it.cursor != nil
}

// HasNext reports whether another item is available, fetching the next page
// if the buffered one is exhausted. Once it returns false it never returns
// true again.
func (it *PaginationIterator[T]) HasNext() bool {
	if it.err != nil {
		return false
	}

	for it.pos >= len(it.buffer) {
		if it.started && !it.hasMore {
			return false
		}

		it.advance()

		if it.err != nil {
			return false
		}
	}

	return true
}

// Next returns the next item. It returns ErrNoMoreItems after the final item,
// or the fetch error that terminated iteration.
func (it *PaginationIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		if it.err != nil {
			return zero, it.err
		}

		return zero, ErrNoMoreItems
	}

	item := it.buffer[it.pos]
	it.pos++

	return item, nil
}

// All drains the remaining items into a slice.
func (it *PaginationIterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return all, err
		}

		all = append(all, item)
	}

	if it.err != nil {
		return all, it.err
	}

	return all, nil
}

// ForEach applies fn to each remaining item, stopping on the first error.
func (it *PaginationIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}

	return it.err
}

// PageResult carries one page or the error that terminated streaming.
type PageResult[T any] struct {
	Page *ListResponse[T]
	Err  error
}

// StreamPages lazily yields whole pages with their cursor metadata intact.
// The channel is closed after the final page, on the first fetch error, or
// when ctx is canceled; no fetch is issued after cancellation is observed.
func StreamPages[T any](ctx context.Context, fetch PageFetcher[T]) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		if fetch == nil {
			select {
			case results <- PageResult[T]{Err: ErrNilFetcher}:
			case <-ctx.Done():
			}

			return
		}

		var cursor *string

		for {
			if err := ctx.Err(); err != nil {
				return
			}

			page, err := fetch(ctx, cursor)

			select {
			case results <- PageResult[T]{Page: page, Err: err}:
			case <-ctx.Done():
				return
			}

			if err != nil {
				return
			}

			cursor = page.continuationCursor()
			if cursor == nil {
				return
			}
		}
	}()

	return results
}
