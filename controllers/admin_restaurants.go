package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	dbpkg "nagoyameshi/db"
	"nagoyameshi/listing"
	"nagoyameshi/models"
	"nagoyameshi/storage"
)

const (
	MessageRestaurantCreated = "店舗を登録しました。"
	MessageRestaurantUpdated = "店舗情報を編集しました。"
	MessageRestaurantDeleted = "店舗を削除しました。"

	adminRestaurantsPath = "/admin/restaurants"
)

// RestaurantForm is the admin restaurant form. The image travels as the
// multipart file "image" and is handled apart from binding.
type RestaurantForm struct {
	Name              string  `json:"name" form:"name" binding:"required,max=255"`
	Description       string  `json:"description" form:"description" binding:"required,max=255"`
	LowestPrice       *int    `json:"lowest_price" form:"lowest_price" binding:"required,min=0"`
	HighestPrice      *int    `json:"highest_price" form:"highest_price" binding:"required,min=0"`
	PostalCode        string  `json:"postal_code" form:"postal_code" binding:"required,postal_code"`
	Address           string  `json:"address" form:"address" binding:"required,max=255"`
	OpeningTime       string  `json:"opening_time" form:"opening_time" binding:"required,hhmm"`
	ClosingTime       string  `json:"closing_time" form:"closing_time" binding:"required,hhmm"`
	SeatingCapacity   *int    `json:"seating_capacity" form:"seating_capacity" binding:"omitempty,min=0"`
	CategoryIDs       []int64 `json:"category_ids" form:"category_ids"`
	RegularHolidayIDs []int64 `json:"regular_holiday_ids" form:"regular_holiday_ids"`
}

func (f RestaurantForm) fields() map[string]interface{} {
	seats := 0
	if f.SeatingCapacity != nil {
		seats = *f.SeatingCapacity
	}
	return map[string]interface{}{
		"name":             f.Name,
		"description":      f.Description,
		"lowest_price":     *f.LowestPrice,
		"highest_price":    *f.HighestPrice,
		"postal_code":      f.PostalCode,
		"address":          f.Address,
		"opening_time":     f.OpeningTime,
		"closing_time":     f.ClosingTime,
		"seating_capacity": seats,
	}
}

func (f RestaurantForm) restaurant() models.Restaurant {
	r := models.Restaurant{
		Name:         f.Name,
		Description:  f.Description,
		LowestPrice:  *f.LowestPrice,
		HighestPrice: *f.HighestPrice,
		PostalCode:   f.PostalCode,
		Address:      f.Address,
		OpeningTime:  f.OpeningTime,
		ClosingTime:  f.ClosingTime,
	}
	if f.SeatingCapacity != nil {
		r.SeatingCapacity = *f.SeatingCapacity
	}
	return r
}

func imageError(err error) map[string]string {
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return map[string]string{"image": "画像は2MB以下のファイルを指定してください。"}
	case errors.Is(err, storage.ErrUnsupportedType):
		return map[string]string{"image": "画像にはjpg, jpeg, png, bmp, gif, svg, webp形式のファイルを指定してください。"}
	}
	return map[string]string{"image": "画像をアップロードできませんでした。"}
}

// syncRelations makes the restaurant's categories and regular holidays exactly
// the given ids.
func syncRelations(tx *gorm.DB, restaurant *models.Restaurant, categoryIDs, holidayIDs []int64) error {
	var categories []models.Category
	if len(categoryIDs) > 0 {
		if err := tx.Where("id IN (?)", categoryIDs).Find(&categories).Error; err != nil {
			return err
		}
	}
	var holidays []models.RegularHoliday
	if len(holidayIDs) > 0 {
		if err := tx.Where("id IN (?)", holidayIDs).Find(&holidays).Error; err != nil {
			return err
		}
	}

	if len(categories) == 0 {
		if err := tx.Model(restaurant).Association("Categories").Clear().Error; err != nil {
			return err
		}
	} else if err := tx.Model(restaurant).Association("Categories").Replace(categories).Error; err != nil {
		return err
	}
	if len(holidays) == 0 {
		return tx.Model(restaurant).Association("RegularHolidays").Clear().Error
	}
	return tx.Model(restaurant).Association("RegularHolidays").Replace(holidays).Error
}

func restaurantChoices(db *gorm.DB) (gin.H, error) {
	var categories []models.Category
	if err := db.Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	var holidays []models.RegularHoliday
	if err := db.Order("id asc").Find(&holidays).Error; err != nil {
		return nil, err
	}
	return gin.H{"categories": categories, "regular_holidays": holidays}, nil
}

func AdminRestaurants(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	keyword := c.Query("keyword")
	page, err := listing.AdminRestaurants(db, keyword, listing.ParsePage(c.Query("page")))
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"restaurants": page, "keyword": keyword, "total": page.Total})
}

func AdminShowRestaurant(c *gin.Context) {
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
	RespondSuccess(c, gin.H{"restaurant": restaurant})
}

func AdminCreateRestaurant(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	payload, err := restaurantChoices(db)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, payload)
}

func AdminStoreRestaurant(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	s := ServicesInstance(c)
	createPath := adminRestaurantsPath + "/create"

	var form RestaurantForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, createPath, fieldErrors(err))
		return
	}
	header, err := c.FormFile("image")
	if err != nil {
		redirectInvalid(c, createPath, map[string]string{"image": "画像を入力してください。"})
		return
	}
	image, err := s.Images.Save(header)
	if err != nil {
		redirectInvalid(c, createPath, imageError(err))
		return
	}

	restaurant := form.restaurant()
	restaurant.Image = image
	err = dbpkg.Transaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(&restaurant).Error; err != nil {
			return err
		}
		return syncRelations(tx, &restaurant, form.CategoryIDs, form.RegularHolidayIDs)
	})
	if err != nil {
		s.Images.Remove(image)
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	s.invalidateHome(c)
	redirectWith(c, adminRestaurantsPath, FlashSuccess, MessageRestaurantCreated)
}

func AdminEditRestaurant(c *gin.Context) {
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
	payload, err := restaurantChoices(db)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	payload["restaurant"] = restaurant
	payload["category_ids"] = restaurant.CategoryIDs()
	RespondSuccess(c, payload)
}

func AdminUpdateRestaurant(c *gin.Context) {
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
	s := ServicesInstance(c)
	editPath := adminRestaurantsPath + "/" + strconv.FormatInt(id, 10) + "/edit"

	var form RestaurantForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, editPath, fieldErrors(err))
		return
	}

	fields := form.fields()
	previous := ""
	if header, err := c.FormFile("image"); err == nil {
		image, err := s.Images.Save(header)
		if err != nil {
			redirectInvalid(c, editPath, imageError(err))
			return
		}
		fields["image"] = image
		previous = restaurant.Image
	}

	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		if err := tx.Model(&restaurant).Updates(fields).Error; err != nil {
			return err
		}
		return syncRelations(tx, &restaurant, form.CategoryIDs, form.RegularHolidayIDs)
	})
	if err != nil {
		if image, ok := fields["image"].(string); ok {
			s.Images.Remove(image)
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if previous != "" {
		s.Images.Remove(previous)
	}

	s.invalidateHome(c)
	redirectWith(c, adminRestaurantsPath+"/"+strconv.FormatInt(id, 10), FlashSuccess, MessageRestaurantUpdated)
}

// AdminDestroyRestaurant removes the restaurant with its reviews,
// reservations, favorites and relation rows.
func AdminDestroyRestaurant(c *gin.Context) {
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
	s := ServicesInstance(c)

	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		steps := []func() error{
			func() error { return tx.Where("restaurant_id = ?", id).Delete(&models.Review{}).Error },
			func() error { return tx.Where("restaurant_id = ?", id).Delete(&models.Reservation{}).Error },
			func() error { return tx.Where("restaurant_id = ?", id).Delete(&models.Favorite{}).Error },
			func() error { return tx.Model(&restaurant).Association("Categories").Clear().Error },
			func() error { return tx.Model(&restaurant).Association("RegularHolidays").Clear().Error },
			func() error { return tx.Delete(&restaurant).Error },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	s.Images.Remove(restaurant.Image)

	s.invalidateHome(c)
	redirectWith(c, adminRestaurantsPath, FlashSuccess, MessageRestaurantDeleted)
}
