package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	dbpkg "nagoyameshi/db"
	"nagoyameshi/listing"
	"nagoyameshi/models"
)

const (
	MessageCategoryCreated = "カテゴリを登録しました。"
	MessageCategoryUpdated = "カテゴリを編集しました。"
	MessageCategoryDeleted = "カテゴリを削除しました。"
	MessageCategoryTaken   = "このカテゴリ名は既に登録されています。"

	adminCategoriesPath = "/admin/categories"
)

type CategoryForm struct {
	Name string `json:"name" form:"name" binding:"required,max=255"`
}

func categoryTaken(c *gin.Context, name string, exceptID int64) (bool, error) {
	db, _ := database(c)
	var count int
	err := db.Model(&models.Category{}).Where("name = ? AND id <> ?", name, exceptID).Count(&count).Error
	return count > 0, err
}

// bindCategory validates the form; it answers the request itself on failure.
func bindCategory(c *gin.Context, exceptID int64) (CategoryForm, bool) {
	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, adminCategoriesPath, fieldErrors(err))
		return form, false
	}
	taken, err := categoryTaken(c, form.Name, exceptID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return form, false
	}
	if taken {
		redirectInvalid(c, adminCategoriesPath, map[string]string{"name": MessageCategoryTaken})
		return form, false
	}
	return form, true
}

func AdminCategories(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	keyword := c.Query("keyword")
	page, err := listing.AdminCategories(db, keyword, listing.ParsePage(c.Query("page")))
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"categories": page, "keyword": keyword, "total": page.Total})
}

func AdminStoreCategory(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	form, ok := bindCategory(c, 0)
	if !ok {
		return
	}
	category := models.Category{Name: form.Name}
	if err := db.Create(&category).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	ServicesInstance(c).invalidateHome(c)
	redirectWith(c, adminCategoriesPath, FlashSuccess, MessageCategoryCreated)
}

func AdminUpdateCategory(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var category models.Category
	if !findOr404(c, db, &category, id, "category") {
		return
	}
	form, ok := bindCategory(c, category.ID)
	if !ok {
		return
	}
	if err := db.Model(&category).Update("name", form.Name).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	ServicesInstance(c).invalidateHome(c)
	redirectWith(c, adminCategoriesPath, FlashSuccess, MessageCategoryUpdated)
}

func AdminDestroyCategory(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var category models.Category
	if !findOr404(c, db, &category, id, "category") {
		return
	}

	err := dbpkg.Transaction(db, func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM category_restaurant WHERE category_id = ?", category.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	ServicesInstance(c).invalidateHome(c)
	redirectWith(c, adminCategoriesPath, FlashSuccess, MessageCategoryDeleted)
}
