package listing

import (
	"github.com/jinzhu/gorm"

	"nagoyameshi/models"
)

func likeName(db *gorm.DB, keyword string) *gorm.DB {
	if keyword == "" {
		return db
	}
	return db.Where("name LIKE ?", "%"+keyword+"%")
}

// AdminRestaurants filters by name only, 10 per page.
func AdminRestaurants(db *gorm.DB, keyword string, page int) (Page, error) {
	base := likeName(db.Model(&models.Restaurant{}), keyword)

	var total int
	if err := base.Count(&total).Error; err != nil {
		return Page{}, err
	}

	restaurants := []models.Restaurant{}
	if err := Paginate(base.Order("id asc"), page, AdminRestaurantsPerPage).Find(&restaurants).Error; err != nil {
		return Page{}, err
	}
	return NewPage(restaurants, total, page, AdminRestaurantsPerPage), nil
}

// AdminUsers matches the keyword against name or kana, 10 per page.
func AdminUsers(db *gorm.DB, keyword string, page int) (Page, error) {
	base := db.Model(&models.User{})
	if keyword != "" {
		like := "%" + keyword + "%"
		base = base.Where("name LIKE ? OR kana LIKE ?", like, like)
	}

	var total int
	if err := base.Count(&total).Error; err != nil {
		return Page{}, err
	}

	users := []models.User{}
	if err := Paginate(base.Order("id asc"), page, AdminUsersPerPage).Find(&users).Error; err != nil {
		return Page{}, err
	}
	return NewPage(users, total, page, AdminUsersPerPage), nil
}

func AdminCategories(db *gorm.DB, keyword string, page int) (Page, error) {
	base := likeName(db.Model(&models.Category{}), keyword)

	var total int
	if err := base.Count(&total).Error; err != nil {
		return Page{}, err
	}

	categories := []models.Category{}
	if err := Paginate(base.Order("id asc"), page, CategoriesPerPage).Find(&categories).Error; err != nil {
		return Page{}, err
	}
	return NewPage(categories, total, page, CategoriesPerPage), nil
}
