package repository

const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 10
	maxPageSize     = 100
)

// PageRequest represents offset-based pagination input. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the page size into the supported range.
func (r PageRequest) Normalize() PageRequest {
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > maxPageSize {
		r.Size = maxPageSize
	}
	if r.Page < 0 {
		r.Page = 0
	}
	return r
}

// Offset returns the row offset for the request.
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Page represents one page of results with totals.
type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	Total      int64
	TotalPages int
	Last       bool
}

// NewPage assembles a Page from the fetched items and the total row count.
func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		Total:      total,
		TotalPages: totalPages,
		Last:       req.Page >= totalPages-1,
	}
}
