package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nagoyameshi/controllers"
	"nagoyameshi/policy"
)

const AdminLoginPath = "/admin/login"

// Adminizer blocks the back office for anyone without an admin session.
func Adminizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := controllers.GetAdminLogged(c); !ok {
			c.Redirect(http.StatusFound, AdminLoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminGuest keeps a signed in admin off the admin login page.
func AdminGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := controllers.GetAdminLogged(c); ok {
			c.Redirect(http.StatusFound, policy.AdminHomePath)
			c.Abort()
			return
		}
		c.Next()
	}
}
