package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

// RespondSuccess renders a page payload. A pending flash from the previous
// redirect is attached under "flash".
func RespondSuccess(c *gin.Context, payload gin.H) {
	if f, ok := CurrentFlash(c); ok {
		payload["flash"] = f
	}
	c.JSON(http.StatusOK, payload)
}

func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusFound, path)
	c.Abort()
}
