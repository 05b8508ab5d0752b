package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	dbpkg "nagoyameshi/db"
	"nagoyameshi/events"
	"nagoyameshi/listing"
	"nagoyameshi/models"
)

const (
	MessageFavoriteAdded      = "お気に入りに追加しました。"
	MessageFavoriteExists     = "すでにお気に入りに追加されています。"
	MessageFavoriteRemoved    = "お気に入りを解除しました。"
	MessageFavoriteNotFound   = "お気に入りが見つかりませんでした。"
	MessageFavoriteAddFailed  = "お気に入りの追加に失敗しました。"
	MessageFavoriteRemoveFail = "お気に入りの解除に失敗しました。"
)

func Favorites(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	user, _ := GetUserLogged(c)
	page, err := listing.FavoriteRestaurants(db, user.ID, listing.ParsePage(c.Query("page")))
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"favorite_restaurants": page})
}

func favoriteTarget(c *gin.Context) (models.Restaurant, bool) {
	var restaurant models.Restaurant
	db, ok := database(c)
	if !ok {
		return restaurant, false
	}
	id, ok := ParamID(c, "restaurant_id")
	if !ok {
		return restaurant, false
	}
	ok = findOr404(c, db, &restaurant, id, "restaurant")
	return restaurant, ok
}

var (
	errFavoriteExists  = errors.New("favorite already exists")
	errFavoriteMissing = errors.New("favorite not found")
)

// StoreFavorite attaches the restaurant to the member's favorites. A second
// add of the same pair changes nothing and says so.
func StoreFavorite(c *gin.Context) {
	restaurant, ok := favoriteTarget(c)
	if !ok {
		return
	}
	db, _ := database(c)
	user, _ := GetUserLogged(c)
	dest := back(c, "/restaurants")

	favorite := models.Favorite{UserID: user.ID, RestaurantID: restaurant.ID}
	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		var count int
		err := tx.Model(&models.Favorite{}).
			Where("user_id = ? AND restaurant_id = ?", user.ID, restaurant.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return errFavoriteExists
		}
		return tx.Create(&favorite).Error
	})
	switch {
	case errors.Is(err, errFavoriteExists):
		redirectWith(c, dest, FlashInfo, MessageFavoriteExists)
		return
	case err != nil:
		favoriteFailed(c, err, dest, MessageFavoriteAddFailed)
		return
	}

	ServicesInstance(c).emit(c, events.New(events.FavoriteAdded, user.ID, restaurant.ID, favorite.ID))
	redirectWith(c, dest, FlashSuccess, MessageFavoriteAdded)
}

// DestroyFavorite detaches the restaurant. Removing a pair that is not there
// reports not found and leaves the table alone.
func DestroyFavorite(c *gin.Context) {
	restaurant, ok := favoriteTarget(c)
	if !ok {
		return
	}
	db, _ := database(c)
	user, _ := GetUserLogged(c)
	dest := back(c, "/favorites")

	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND restaurant_id = ?", user.ID, restaurant.ID).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errFavoriteMissing
		}
		return nil
	})
	switch {
	case errors.Is(err, errFavoriteMissing):
		redirectWith(c, dest, FlashError, MessageFavoriteNotFound)
		return
	case err != nil:
		favoriteFailed(c, err, dest, MessageFavoriteRemoveFail)
		return
	}

	ServicesInstance(c).emit(c, events.New(events.FavoriteRemoved, user.ID, restaurant.ID, 0))
	redirectWith(c, dest, FlashSuccess, MessageFavoriteRemoved)
}

func favoriteFailed(c *gin.Context, err error, dest, message string) {
	ServicesInstance(c).logger().WithError(err).Error("favorite write failed")
	redirectWith(c, dest, FlashError, message)
}
