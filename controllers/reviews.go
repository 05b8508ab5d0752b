package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nagoyameshi/events"
	"nagoyameshi/listing"
	"nagoyameshi/models"
	"nagoyameshi/policy"
)

const (
	MessageReviewCreated = "レビューを投稿しました。"
	MessageReviewUpdated = "レビューを編集しました。"
	MessageReviewDeleted = "レビューを削除しました。"
)

type ReviewForm struct {
	Score   int    `json:"score" form:"score" binding:"required,min=1,max=5"`
	Content string `json:"content" form:"content" binding:"required"`
}

func reviewsPath(restaurantID int64) string {
	return "/restaurants/" + strconv.FormatInt(restaurantID, 10) + "/reviews"
}

func loadRestaurant(c *gin.Context) (models.Restaurant, bool) {
	var restaurant models.Restaurant
	db, ok := database(c)
	if !ok {
		return restaurant, false
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return restaurant, false
	}
	ok = findOr404(c, db, &restaurant, id, "restaurant")
	return restaurant, ok
}

// loadOwnReview resolves :review_id under :id and stops unless the current
// member wrote it.
func loadOwnReview(c *gin.Context) (models.Restaurant, models.Review, bool) {
	var review models.Review
	restaurant, ok := loadRestaurant(c)
	if !ok {
		return restaurant, review, false
	}
	db, _ := database(c)
	reviewID, ok := ParamID(c, "review_id")
	if !ok {
		return restaurant, review, false
	}
	if !findOr404(c, db, &review, reviewID, "review") {
		return restaurant, review, false
	}
	if review.RestaurantID != restaurant.ID {
		RespondError(c, "review not found", http.StatusNotFound)
		return restaurant, review, false
	}
	feature := policy.ReviewWriteFeature.WithIndex(reviewsPath(restaurant.ID))
	if !Authorize(c, policy.Request{Feature: feature, Owned: true, OwnerID: review.UserID}) {
		return restaurant, review, false
	}
	return restaurant, review, true
}

// Reviews lists a restaurant's reviews, newest first. Premium members get a
// longer page.
func Reviews(c *gin.Context) {
	restaurant, ok := loadRestaurant(c)
	if !ok {
		return
	}
	db, _ := database(c)
	premium, err := isPremium(c)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	page, err := listing.Reviews(db, restaurant.ID, premium, listing.ParsePage(c.Query("page")))
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"restaurant": restaurant, "reviews": page, "premium": premium})
}

func CreateReview(c *gin.Context) {
	restaurant, ok := loadRestaurant(c)
	if !ok {
		return
	}
	RespondSuccess(c, gin.H{"restaurant": restaurant})
}

func StoreReview(c *gin.Context) {
	restaurant, ok := loadRestaurant(c)
	if !ok {
		return
	}
	db, _ := database(c)
	user, _ := GetUserLogged(c)

	var form ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, reviewsPath(restaurant.ID)+"/create", fieldErrors(err))
		return
	}

	review := models.Review{
		Score:        form.Score,
		Content:      form.Content,
		RestaurantID: restaurant.ID,
		UserID:       user.ID,
	}
	if err := db.Create(&review).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	ServicesInstance(c).emit(c, events.New(events.ReviewCreated, user.ID, restaurant.ID, review.ID))
	redirectWith(c, reviewsPath(restaurant.ID), FlashSuccess, MessageReviewCreated)
}

func EditReview(c *gin.Context) {
	restaurant, review, ok := loadOwnReview(c)
	if !ok {
		return
	}
	RespondSuccess(c, gin.H{"restaurant": restaurant, "review": review})
}

func UpdateReview(c *gin.Context) {
	restaurant, review, ok := loadOwnReview(c)
	if !ok {
		return
	}
	db, _ := database(c)

	var form ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		editPath := reviewsPath(restaurant.ID) + "/" + strconv.FormatInt(review.ID, 10) + "/edit"
		redirectInvalid(c, editPath, fieldErrors(err))
		return
	}

	err := db.Model(&review).Updates(map[string]interface{}{
		"score":   form.Score,
		"content": form.Content,
	}).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	ServicesInstance(c).emit(c, events.New(events.ReviewUpdated, review.UserID, restaurant.ID, review.ID))
	redirectWith(c, reviewsPath(restaurant.ID), FlashSuccess, MessageReviewUpdated)
}

func DestroyReview(c *gin.Context) {
	restaurant, review, ok := loadOwnReview(c)
	if !ok {
		return
	}
	db, _ := database(c)
	if err := db.Delete(&review).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	ServicesInstance(c).emit(c, events.New(events.ReviewDeleted, review.UserID, restaurant.ID, review.ID))
	redirectWith(c, reviewsPath(restaurant.ID), FlashSuccess, MessageReviewDeleted)
}
