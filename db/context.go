package db

import (
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

const dbKey = "db"

// SetDBtoContext makes the connection available to every handler.
func SetDBtoContext(database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, database)
		c.Next()
	}
}

// DBInstance returns the connection set by SetDBtoContext, or nil.
func DBInstance(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(dbKey); ok {
		if database, ok := v.(*gorm.DB); ok {
			return database
		}
	}
	return nil
}

// Transaction runs fn in a transaction. It commits when fn returns nil and
// rolls back on an error or a panic, which is re-raised. fn must only use tx.
func Transaction(database *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := database.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
