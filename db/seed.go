package db

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"nagoyameshi/config"
	"nagoyameshi/logger"
	"nagoyameshi/models"
	"nagoyameshi/tools"
)

// Seed inserts the fixed lookup rows and the configured back-office account.
// Existing rows are left untouched, so it is safe on every boot.
func Seed(db *gorm.DB, conf config.Configuration) error {
	for _, holiday := range models.DefaultRegularHolidays() {
		h := holiday
		if err := db.Where(models.RegularHoliday{Day: h.Day}).FirstOrCreate(&h).Error; err != nil {
			return err
		}
	}

	if conf.Admin.Email == "" || conf.Admin.Password == "" {
		return nil
	}
	if !tools.ValidateEmail(conf.Admin.Email) {
		return fmt.Errorf("seed: invalid admin email %q", conf.Admin.Email)
	}
	if rule := tools.CheckPassword(conf.Admin.Password); rule != "" {
		return fmt.Errorf("seed: admin %s is too weak", rule)
	}

	var count int
	if err := db.Model(&models.Admin{}).Where("email = ?", conf.Admin.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := tools.HashPassword(conf.Admin.Password)
	if err != nil {
		return err
	}
	admin := models.Admin{Email: conf.Admin.Email, Password: hash}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Log().WithField("email", admin.Email).Info("seeded admin account")
	return nil
}
