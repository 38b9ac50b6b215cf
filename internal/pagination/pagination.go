// Package pagination slices ordered sequences into fixed-size pages.
//
// Limit and page arrive as raw query-string values (they cross the HTTP
// boundary as strings and are coerced here, in one place). Paginate is a pure
// function: it never mutates its input and identical arguments always produce
// identical results.
package pagination

import (
	"strconv"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
)

// DefaultLimit is the page size applied when the caller omits a limit. It
// matches the catalog's hard ceiling of 250 entries.
const DefaultLimit = 250

// ParseLimit coerces a raw limit value. Empty means DefaultLimit; anything
// that is not a finite, strictly positive integer fails.
func ParseLimit(raw string) (int, error) {
	if raw == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, model.NewInvalidArgument("limit")
	}
	return n, nil
}

// ParsePage coerces a raw page value. Empty means page 1; anything that is
// not a finite, strictly positive integer fails.
func ParsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, model.NewArgumentNotFound("page")
	}
	return n, nil
}

// Paginate returns the sub-sequence [(page-1)*limit, page*limit) of items,
// clipped to bounds, together with the total page count. A page beyond the
// last one yields an empty page, not an error.
func Paginate[T any](items []T, limit, page string) (model.Paginated[T], error) {
	l, err := ParseLimit(limit)
	if err != nil {
		return model.Paginated[T]{}, err
	}
	p, err := ParsePage(page)
	if err != nil {
		return model.Paginated[T]{}, err
	}

	totalPages := (len(items) + l - 1) / l

	start := (p - 1) * l
	if start > len(items) {
		start = len(items)
	}
	end := start + l
	if end > len(items) {
		end = len(items)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])

	return model.Paginated[T]{Items: out, TotalPages: totalPages}, nil
}
