package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"nagoyameshi/listing"
	"nagoyameshi/models"
)

// Home serves the landing page, from redis when the payload is cached.
func Home(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	s := ServicesInstance(c)
	ctx := c.Request.Context()

	var home listing.Home
	hit, err := s.Home.Get(ctx, &home)
	if err != nil {
		s.logger().WithError(err).Warn("home cache read failed")
	}
	if !hit {
		home, err = listing.BuildHome(db)
		if err != nil {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := s.Home.Set(ctx, home); err != nil {
			s.logger().WithError(err).Warn("home cache write failed")
		}
	}

	RespondSuccess(c, gin.H{
		"highly_rated_restaurants": home.HighlyRated,
		"categories":               home.Categories,
		"new_restaurants":          home.Newest,
	})
}

func Company(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	company, err := firstCompany(db)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"company": company})
}

func Terms(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	term, err := firstTerm(db)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"term": term})
}

// firstCompany returns the first company row, or the placeholder when the
// table is still empty.
func firstCompany(db *gorm.DB) (models.Company, error) {
	var company models.Company
	err := db.Order("id asc").First(&company).Error
	if gorm.IsRecordNotFoundError(err) {
		return models.PlaceholderCompany(), nil
	}
	return company, err
}

func firstTerm(db *gorm.DB) (models.Term, error) {
	var term models.Term
	err := db.Order("id asc").First(&term).Error
	if gorm.IsRecordNotFoundError(err) {
		return models.Term{}, nil
	}
	return term, err
}
