package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedResultComputesTotalPages(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		expected int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
	}
	for _, tc := range cases {
		result := NewPaginatedResult([]int{}, tc.total, 1, tc.pageSize)
		assert.Equal(t, tc.expected, result.TotalPages, "total=%d pageSize=%d", tc.total, tc.pageSize)
	}
}

func TestNewPaginatedResultNeverReturnsNilItems(t *testing.T) {
	result := NewPaginatedResult[string](nil, 0, 1, 10)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}
