package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type Pagination struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string // asc|desc
	Query     string
	Field     string
}

// ParsePagination membaca page, per_page, sort_by, order, q dan field dari query string
func ParsePagination(c *fiber.Ctx, defaultSortBy string) Pagination {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	per := atoiDefault(c.Query("per_page"), DefaultPerPage)
	if per < 1 {
		per = DefaultPerPage
	}
	if per > MaxPerPage {
		per = MaxPerPage
	}

	sortBy := strings.TrimSpace(c.Query("sort_by"))
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	order := strings.ToLower(strings.TrimSpace(c.Query("order")))
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	field := strings.TrimSpace(c.Query("field"))
	if field == "" {
		field = "all"
	}

	return Pagination{
		Page:      page,
		PerPage:   per,
		SortBy:    sortBy,
		SortOrder: order,
		Query:     strings.TrimSpace(c.Query("q")),
		Field:     field,
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func (p Pagination) Limit() int  { return p.PerPage }
func (p Pagination) Offset() int { return (p.Page - 1) * p.PerPage }

// Pages jumlah halaman untuk total baris
func (p Pagination) Pages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.PerPage)))
}

func (p Pagination) HasNext(total int64) bool {
	return p.Page < p.Pages(total)
}

// PagedResponse bentuk list yang dipakai frontend monitoring
func PagedResponse(data interface{}, total int64, p Pagination) fiber.Map {
	return fiber.Map{
		"success":      true,
		"data":         data,
		"total":        total,
		"pages":        p.Pages(total),
		"current_page": p.Page,
		"per_page":     p.PerPage,
		"has_next":     p.HasNext(total),
	}
}
