package domain

import "math"

// Paging defaults and bounds shared by every list endpoint.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxSearchLength = 200
)

// SortOrder is the direction of a list query.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FlashcardSortField is a column flashcards can be ordered by.
type FlashcardSortField string

const (
	SortByCreatedAt FlashcardSortField = "createdAt"
	SortByUpdatedAt FlashcardSortField = "updatedAt"
	SortByFront     FlashcardSortField = "front"
)

// FlashcardQuery selects one page of a user's flashcards.
type FlashcardQuery struct {
	Page      int
	PageSize  int
	Source    *Source
	Search    string
	SortBy    FlashcardSortField
	SortOrder SortOrder
}

// GenerationQuery selects one page of a user's generations, ordered by
// creation time.
type GenerationQuery struct {
	Page      int
	PageSize  int
	SortOrder SortOrder
}

// Normalize fills in defaults for zero values. An unknown sort field falls
// back to createdAt.
func (q *FlashcardQuery) Normalize() {
	q.Page, q.PageSize = normalizePage(q.Page, q.PageSize)
	q.SortOrder = normalizeOrder(q.SortOrder)
	switch q.SortBy {
	case SortByCreatedAt, SortByUpdatedAt, SortByFront:
	default:
		q.SortBy = SortByCreatedAt
	}
}

// Offset returns the number of rows to skip.
func (q FlashcardQuery) Offset() int {
	return pageOffset(q.Page, q.PageSize)
}

// Normalize fills in defaults for zero values.
func (q *GenerationQuery) Normalize() {
	q.Page, q.PageSize = normalizePage(q.Page, q.PageSize)
	q.SortOrder = normalizeOrder(q.SortOrder)
}

// Offset returns the number of rows to skip.
func (q GenerationQuery) Offset() int {
	return pageOffset(q.Page, q.PageSize)
}

// Pagination is the metadata returned next to every page of results.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
}

// NewPagination computes TotalPages as ceil(totalItems/pageSize).
func NewPagination(page, pageSize, totalItems int) Pagination {
	totalPages := 0
	if totalItems > 0 && pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	return Pagination{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
	}
}

// pageOffset saturates at math.MaxInt so that an absurd page number reads
// past the end instead of wrapping negative.
func pageOffset(page, pageSize int) int {
	if page <= 1 || pageSize <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func normalizeOrder(o SortOrder) SortOrder {
	if o == SortAsc {
		return SortAsc
	}
	return SortDesc
}
