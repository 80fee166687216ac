package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPaginationResponse(t *testing.T) {
	t.Run("middle page links both directions", func(t *testing.T) {
		pagination := BuildPaginationResponse(45, 2, 20, "/admissions/discharged")

		assert.Equal(t, 45, pagination.Total)
		assert.Equal(t, 2, pagination.Page)
		assert.Equal(t, 20, pagination.PageSize)
		assert.Equal(t, "/admissions/discharged?page=3&pageSize=20", pagination.NextURL)
		assert.Equal(t, "/admissions/discharged?page=1&pageSize=20", pagination.PrevURL)
	})

	t.Run("first page has no previous link", func(t *testing.T) {
		pagination := BuildPaginationResponse(45, 1, 20, "/admissions/discharged")

		assert.NotEmpty(t, pagination.NextURL)
		assert.Empty(t, pagination.PrevURL)
	})

	t.Run("last page has no next link", func(t *testing.T) {
		pagination := BuildPaginationResponse(45, 3, 20, "/admissions/discharged")

		assert.Empty(t, pagination.NextURL)
		assert.Equal(t, "/admissions/discharged?page=2&pageSize=20", pagination.PrevURL)
	})

	t.Run("exact multiple of the page size stops at the boundary", func(t *testing.T) {
		pagination := BuildPaginationResponse(40, 2, 20, "/admissions/discharged")

		assert.Empty(t, pagination.NextURL)
	})
}
