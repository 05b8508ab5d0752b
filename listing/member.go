package listing

import (
	"github.com/jinzhu/gorm"

	"nagoyameshi/models"
)

// FavoriteRestaurants lists a user's favorites, most recently favorited first.
func FavoriteRestaurants(db *gorm.DB, userID int64, page int) (Page, error) {
	base := db.Table("restaurants").
		Joins("JOIN restaurant_user ON restaurant_user.restaurant_id = restaurants.id").
		Where("restaurant_user.user_id = ?", userID)

	var total int
	if err := base.Count(&total).Error; err != nil {
		return Page{}, err
	}

	restaurants := []models.Restaurant{}
	query := base.Select("restaurants.*").
		Order("restaurant_user.created_at desc").
		Order("restaurant_user.id desc")
	if err := Paginate(query, page, FavoritesPerPage).Scan(&restaurants).Error; err != nil {
		return Page{}, err
	}
	return NewPage(restaurants, total, page, FavoritesPerPage), nil
}

// Reservations lists a user's reservations, latest reserved time first.
func Reservations(db *gorm.DB, userID int64, page int) (Page, error) {
	base := db.Model(&models.Reservation{}).Where("user_id = ?", userID)

	var total int
	if err := base.Count(&total).Error; err != nil {
		return Page{}, err
	}

	reservations := []models.Reservation{}
	query := base.Preload("Restaurant").Order("reserved_datetime desc").Order("id desc")
	if err := Paginate(query, page, ReservationsPerPage).Find(&reservations).Error; err != nil {
		return Page{}, err
	}
	return NewPage(reservations, total, page, ReservationsPerPage), nil
}

// Reviews lists one restaurant's reviews, newest first. Premium members see
// more per page than free members.
func Reviews(db *gorm.DB, restaurantID int64, premium bool, page int) (Page, error) {
	perPage := ReviewsPerPageFree
	if premium {
		perPage = ReviewsPerPagePremium
	}

	base := db.Model(&models.Review{}).Where("restaurant_id = ?", restaurantID)

	var total int
	if err := base.Count(&total).Error; err != nil {
		return Page{}, err
	}

	reviews := []models.Review{}
	query := base.Preload("User", reviewAuthor).Order("created_at desc").Order("id desc")
	if err := Paginate(query, page, perPage).Find(&reviews).Error; err != nil {
		return Page{}, err
	}
	return NewPage(reviews, total, page, perPage), nil
}

// reviewAuthor limits the preloaded author to what the review list shows.
func reviewAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id, name")
}
