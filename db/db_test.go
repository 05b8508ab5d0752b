package db

import (
	"errors"
	"testing"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nagoyameshi/config"
	"nagoyameshi/models"
	"nagoyameshi/tools"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestSeed_IsRepeatable(t *testing.T) {
	db := openMemory(t)

	var conf config.Configuration
	conf.Admin.Email = "admin@example.com"
	conf.Admin.Password = "password"

	require.NoError(t, Seed(db, conf))
	require.NoError(t, Seed(db, conf))

	var holidays int
	db.Model(&models.RegularHoliday{}).Count(&holidays)
	assert.Equal(t, 8, holidays)

	var admins []models.Admin
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, tools.ComparePassword(admins[0].Password, "password"))
}

func TestSeed_WithoutAdminConfig(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Seed(db, config.Configuration{}))

	var admins int
	db.Model(&models.Admin{}).Count(&admins)
	assert.Equal(t, 0, admins)
}

func TestSeed_RejectsBadAdminConfig(t *testing.T) {
	db := openMemory(t)

	var conf config.Configuration
	conf.Admin.Email = "not-an-email"
	conf.Admin.Password = "password"
	assert.Error(t, Seed(db, conf))

	conf.Admin.Email = "admin@example.com"
	conf.Admin.Password = "short"
	assert.Error(t, Seed(db, conf))

	var admins int
	db.Model(&models.Admin{}).Count(&admins)
	assert.Equal(t, 0, admins)
}

func TestTransaction(t *testing.T) {
	db := openMemory(t)

	err := Transaction(db, func(tx *gorm.DB) error {
		return tx.Create(&models.Category{Name: "和食"}).Error
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = Transaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Category{Name: "中華"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.Panics(t, func() {
		_ = Transaction(db, func(tx *gorm.DB) error {
			tx.Create(&models.Category{Name: "洋食"})
			panic("stop")
		})
	})

	var names []string
	require.NoError(t, db.Model(&models.Category{}).Order("id").Pluck("name", &names).Error)
	assert.Equal(t, []string{"和食"}, names)
}
