package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"nagoyameshi/billing"
	"nagoyameshi/listing"
	"nagoyameshi/models"
)

type Dashboard struct {
	TotalUsers        int   `json:"total_users"`
	PremiumUsers      int   `json:"total_premium_users"`
	FreeUsers         int   `json:"total_free_users"`
	TotalRestaurants  int   `json:"total_restaurants"`
	TotalReservations int   `json:"total_reservations"`
	MonthlySales      int64 `json:"sales_for_this_month"`
}

// BuildDashboard counts the back-office figures. Sales assume every premium
// member pays the monthly fee.
func BuildDashboard(db *gorm.DB, monthlyFee int64) (Dashboard, error) {
	var d Dashboard
	if err := db.Model(&models.User{}).Count(&d.TotalUsers).Error; err != nil {
		return d, err
	}
	premium, err := billing.NewStore(db).PremiumCount()
	if err != nil {
		return d, err
	}
	d.PremiumUsers = premium
	d.FreeUsers = d.TotalUsers - premium
	if err := db.Model(&models.Restaurant{}).Count(&d.TotalRestaurants).Error; err != nil {
		return d, err
	}
	if err := db.Model(&models.Reservation{}).Count(&d.TotalReservations).Error; err != nil {
		return d, err
	}
	d.MonthlySales = monthlyFee * int64(premium)
	return d, nil
}

func AdminHome(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	d, err := BuildDashboard(db, ServicesInstance(c).Config.Stripe.MonthlyFee)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"dashboard": d})
}

func AdminUsers(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	keyword := c.Query("keyword")
	page, err := listing.AdminUsers(db, keyword, listing.ParsePage(c.Query("page")))
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"users": page, "keyword": keyword, "total": page.Total})
}

func AdminShowUser(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var user models.User
	if !findOr404(c, db, &user, id, "user") {
		return
	}
	RespondSuccess(c, gin.H{"user": user})
}
