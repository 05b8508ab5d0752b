package listing

import (
	"github.com/jinzhu/gorm"

	"nagoyameshi/models"
)

const homeSectionSize = 6

// Home is the public top page: best rated shops, every category and the newest shops.
type Home struct {
	HighlyRated []RestaurantRow     `json:"highly_rated_restaurants"`
	Categories  []models.Category   `json:"categories"`
	Newest      []models.Restaurant `json:"new_restaurants"`
}

func BuildHome(db *gorm.DB) (Home, error) {
	var (
		home Home
		err  error
	)
	if home.HighlyRated, err = TopRated(db, homeSectionSize); err != nil {
		return Home{}, err
	}
	home.Categories = []models.Category{}
	if err = db.Order("id asc").Find(&home.Categories).Error; err != nil {
		return Home{}, err
	}
	if home.Newest, err = Newest(db, homeSectionSize); err != nil {
		return Home{}, err
	}
	return home, nil
}
