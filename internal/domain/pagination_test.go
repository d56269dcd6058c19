package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       int
		pageSize   int
		totalItems int
		wantPages  int
	}{
		{"empty", 1, 20, 0, 0},
		{"exact fit", 1, 10, 30, 3},
		{"remainder", 1, 10, 31, 4},
		{"single item", 1, 100, 1, 1},
		{"beyond range keeps metadata", 9, 10, 15, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.pageSize, tt.totalItems)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.pageSize, p.PageSize)
			assert.Equal(t, tt.totalItems, p.TotalItems)
		})
	}
}

func TestFlashcardQueryNormalize(t *testing.T) {
	t.Parallel()

	q := FlashcardQuery{PageSize: 500, SortBy: "id", SortOrder: "sideways"}
	q.Normalize()

	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, MaxPageSize, q.PageSize)
	assert.Equal(t, SortByCreatedAt, q.SortBy)
	assert.Equal(t, SortDesc, q.SortOrder)
	assert.Equal(t, 0, q.Offset())

	q = FlashcardQuery{Page: 3, PageSize: 10, SortBy: SortByFront, SortOrder: SortAsc}
	q.Normalize()
	assert.Equal(t, 20, q.Offset())
	assert.Equal(t, SortByFront, q.SortBy)
	assert.Equal(t, SortAsc, q.SortOrder)
}

func TestGenerationQueryNormalize(t *testing.T) {
	t.Parallel()

	q := GenerationQuery{}
	q.Normalize()
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, SortDesc, q.SortOrder)
}

func TestOffsetSaturatesOnHugePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{"first page", 1, 20, 0},
		{"regular page", 4, 25, 75},
		{"largest exact page", math.MaxInt/100 + 1, 100, math.MaxInt / 100 * 100},
		{"max int page", math.MaxInt, 20, math.MaxInt},
		{"max int page with max size", math.MaxInt, MaxPageSize, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fq := FlashcardQuery{Page: tt.page, PageSize: tt.pageSize}
			gq := GenerationQuery{Page: tt.page, PageSize: tt.pageSize}
			assert.Equal(t, tt.want, fq.Offset())
			assert.Equal(t, tt.want, gq.Offset())
			assert.GreaterOrEqual(t, fq.Offset(), 0)
		})
	}
}
