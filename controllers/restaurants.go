package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nagoyameshi/listing"
	"nagoyameshi/models"
	"nagoyameshi/tools"
)

// Restaurants is the public search page: keyword, category and budget filters
// with one of the listed sort orders.
func Restaurants(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	q := listing.ParseRestaurantQuery(c.Request.URL.Query())
	page, err := listing.SearchRestaurants(db, q)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	var categories []models.Category
	if err := db.Order("id asc").Find(&categories).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{
		"restaurants": page,
		"keyword":     q.Keyword,
		"category_id": q.CategoryID,
		"price":       q.Price,
		"sort":        q.Sort,
		"sorts":       listing.SortOptions,
		"categories":  categories,
		"total":       page.Total,
	})
}

func ShowRestaurant(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if !findOr404(c, db.Preload("Categories").Preload("RegularHolidays"), &restaurant, id, "restaurant") {
		return
	}
	rating, err := listing.RatingOf(db, id)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	favorited := false
	if user, ok := GetUserLogged(c); ok {
		var count int
		err := db.Model(&models.Favorite{}).Where("user_id = ? AND restaurant_id = ?", user.ID, id).Count(&count).Error
		if err != nil {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
		favorited = count > 0
	}

	RespondSuccess(c, gin.H{
		"restaurant": restaurant,
		"rating":     rating,
		"favorited":  favorited,
	})
}

// RestaurantQRCode renders a PNG QR code linking to the restaurant page.
func RestaurantQRCode(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if !findOr404(c, db, &restaurant, id, "restaurant") {
		return
	}
	png, err := tools.RestaurantQRCode(ServicesInstance(c).Config.Site.BaseURL, restaurant.ID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
