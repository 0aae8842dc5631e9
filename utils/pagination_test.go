package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, query string) Pagination {
	t.Helper()
	var got Pagination
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParsePagination(c, "created_at")
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/"+query, nil), -1)
	require.NoError(t, err)
	return got
}

func TestParsePaginationDefaults(t *testing.T) {
	p := parse(t, "")
	assert.Equal(t, Pagination{Page: 1, PerPage: 10, SortBy: "created_at", SortOrder: "desc", Field: "all"}, p)
	assert.Equal(t, 0, p.Offset())
}

func TestParsePaginationClamps(t *testing.T) {
	p := parse(t, "?page=0&per_page=1000&order=ASC&sort_by=vessel_name&q=%20abc%20&field=port_name")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, "asc", p.SortOrder)
	assert.Equal(t, "vessel_name", p.SortBy)
	assert.Equal(t, "abc", p.Query)
	assert.Equal(t, "port_name", p.Field)

	p = parse(t, "?page=3&per_page=-5&order=sideways")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, "desc", p.SortOrder)
	assert.Equal(t, 20, p.Offset())
}

func TestPages(t *testing.T) {
	p := Pagination{Page: 2, PerPage: 10}
	assert.Equal(t, 0, p.Pages(0))
	assert.Equal(t, 3, p.Pages(21))
	assert.True(t, p.HasNext(21))
	assert.False(t, p.HasNext(20))

	resp := PagedResponse([]int{1}, 21, p)
	assert.Equal(t, 3, resp["pages"])
	assert.Equal(t, true, resp["has_next"])
	assert.Equal(t, int64(21), resp["total"])
}
