package common

// PaginatedResult is the envelope for all list endpoints. Page numbering is
// 1-based.
type PaginatedResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

func NewPaginatedResult[T any](items []T, total int64, page, pageSize int) *PaginatedResult[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return &PaginatedResult[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}
}

// totalPages is ceil(total / pageSize); zero matches yield zero pages.
func totalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
