package listing

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jinzhu/gorm"

	"nagoyameshi/models"
)

const (
	SortNewest      = "created_at desc"
	SortLowestPrice = "lowest_price asc"
	SortRating      = "rating desc"
)

type SortOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SortOptions is the fixed set offered by the public listing, in display order.
var SortOptions = []SortOption{
	{Label: "掲載日が新しい順", Value: SortNewest},
	{Label: "価格が安い順", Value: SortLowestPrice},
	{Label: "評価が高い順", Value: SortRating},
}

var sortClauses = map[string]string{
	SortNewest:      "restaurants.created_at desc",
	SortLowestPrice: "restaurants.lowest_price asc",
	SortRating:      "COALESCE(ratings.rating, 0) desc",
}

const ratingsJoin = "LEFT JOIN (SELECT restaurant_id, AVG(score) AS rating FROM reviews GROUP BY restaurant_id) ratings ON ratings.restaurant_id = restaurants.id"

// RestaurantQuery holds the public listing filters. Zero values mean "no filter".
type RestaurantQuery struct {
	Keyword    string `json:"keyword"`
	CategoryID int64  `json:"category_id"`
	Price      int    `json:"price"`
	Sort       string `json:"select_sort"`
	Page       int    `json:"page"`
}

// ParseRestaurantQuery reads keyword, category_id, price, select_sort and page.
// Values that do not parse are dropped instead of failing the request.
func ParseRestaurantQuery(values url.Values) RestaurantQuery {
	q := RestaurantQuery{
		Keyword: strings.TrimSpace(values.Get("keyword")),
		Sort:    resolveSort(values.Get("select_sort")),
		Page:    ParsePage(values.Get("page")),
	}
	if id, err := strconv.ParseInt(values.Get("category_id"), 10, 64); err == nil && id > 0 {
		q.CategoryID = id
	}
	if price, err := strconv.Atoi(values.Get("price")); err == nil && price > 0 {
		q.Price = price
	}
	return q
}

func resolveSort(raw string) string {
	raw = strings.TrimSpace(raw)
	if _, ok := sortClauses[raw]; ok {
		return raw
	}
	return SortNewest
}

// RestaurantRow is a restaurant plus its average review score (0 without reviews).
type RestaurantRow struct {
	models.Restaurant
	Rating float64 `json:"rating"`
}

func (q RestaurantQuery) filter(db *gorm.DB) *gorm.DB {
	if q.Keyword != "" {
		like := "%" + q.Keyword + "%"
		db = db.Where(
			"restaurants.name LIKE ? OR restaurants.address LIKE ? OR restaurants.id IN ("+
				"SELECT category_restaurant.restaurant_id FROM category_restaurant "+
				"JOIN categories ON categories.id = category_restaurant.category_id "+
				"WHERE categories.name LIKE ?)",
			like, like, like,
		)
	}
	if q.CategoryID > 0 {
		db = db.Where("restaurants.id IN (SELECT restaurant_id FROM category_restaurant WHERE category_id = ?)", q.CategoryID)
	}
	if q.Price > 0 {
		db = db.Where("restaurants.lowest_price <= ?", q.Price)
	}
	return db
}

// SearchRestaurants runs the public listing: keyword over name, address and
// category name (OR), then category and price (AND), sorted and paged by 15.
func SearchRestaurants(db *gorm.DB, q RestaurantQuery) (Page, error) {
	var total int
	if err := q.filter(db.Model(&models.Restaurant{})).Count(&total).Error; err != nil {
		return Page{}, err
	}

	rows := []RestaurantRow{}
	query := q.filter(db.Table("restaurants")).
		Select("restaurants.*, COALESCE(ratings.rating, 0) AS rating").
		Joins(ratingsJoin).
		Order(sortClauses[resolveSort(q.Sort)]).
		Order("restaurants.created_at desc").
		Order("restaurants.id desc")
	if err := Paginate(query, q.Page, RestaurantsPerPage).Scan(&rows).Error; err != nil {
		return Page{}, err
	}

	return NewPage(rows, total, q.Page, RestaurantsPerPage), nil
}

// TopRated returns up to limit restaurants by average score, best first.
func TopRated(db *gorm.DB, limit int) ([]RestaurantRow, error) {
	rows := []RestaurantRow{}
	err := db.Table("restaurants").
		Select("restaurants.*, COALESCE(ratings.rating, 0) AS rating").
		Joins(ratingsJoin).
		Order(sortClauses[SortRating]).
		Order("restaurants.created_at desc").
		Order("restaurants.id desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// Newest returns up to limit restaurants, most recently listed first.
func Newest(db *gorm.DB, limit int) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	err := db.Order("created_at desc").Order("id desc").Limit(limit).Find(&restaurants).Error
	return restaurants, err
}

// RatingOf returns the average score of one restaurant, 0 without reviews.
func RatingOf(db *gorm.DB, restaurantID int64) (float64, error) {
	var out struct {
		Rating float64
	}
	err := db.Table("reviews").
		Select("COALESCE(AVG(score), 0) AS rating").
		Where("restaurant_id = ?", restaurantID).
		Scan(&out).Error
	return out.Rating, err
}
