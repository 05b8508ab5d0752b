package listing

import (
	"strconv"

	"github.com/jinzhu/gorm"
)

const (
	RestaurantsPerPage      = 15
	AdminRestaurantsPerPage = 10
	AdminUsersPerPage       = 10
	CategoriesPerPage       = 15
	FavoritesPerPage        = 15
	ReservationsPerPage     = 15
	ReviewsPerPagePremium   = 5
	ReviewsPerPageFree      = 3
)

// Page is one page of a listing plus what is needed to render pager controls.
type Page struct {
	Items    interface{} `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PerPage  int         `json:"per_page"`
	LastPage int         `json:"last_page"`
}

func NewPage(items interface{}, total, page, perPage int) Page {
	last := 1
	if perPage > 0 && total > 0 {
		last = (total + perPage - 1) / perPage
	}
	return Page{Items: items, Total: total, Page: page, PerPage: perPage, LastPage: last}
}

// ParsePage reads a 1-based page number; anything invalid is page 1.
func ParsePage(raw string) int {
	p, err := strconv.Atoi(raw)
	if err != nil || p < 1 {
		return 1
	}
	return p
}

// Paginate applies LIMIT/OFFSET for the given 1-based page.
func Paginate(query *gorm.DB, page, perPage int) *gorm.DB {
	if page < 1 {
		page = 1
	}
	return query.Limit(perPage).Offset((page - 1) * perPage)
}
