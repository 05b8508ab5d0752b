package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	dbpkg "nagoyameshi/db"
	"nagoyameshi/tools"
)

func ParamID(c *gin.Context, name string) (int64, bool) {
	v := c.Param(name)
	if v == "" {
		RespondError(c, name+" is required", http.StatusBadRequest)
		return 0, false
	}
	id := tools.ParseID(v)
	if id == 0 {
		RespondError(c, name+" is invalid", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// database returns the request's connection or answers 500 when none is set.
func database(c *gin.Context) (*gorm.DB, bool) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return nil, false
	}
	return db, true
}

// findOr404 loads a record by primary key, answering 404 or 500 on failure.
func findOr404(c *gin.Context, db *gorm.DB, out interface{}, id int64, what string) bool {
	err := db.First(out, id).Error
	if gorm.IsRecordNotFoundError(err) {
		RespondError(c, what+" not found", http.StatusNotFound)
		return false
	}
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return false
	}
	return true
}

// back returns the same-site Referer path, or fallback.
func back(c *gin.Context, fallback string) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) || !strings.HasPrefix(u.Path, "/") {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
