package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nagoyameshi/controllers"
	"nagoyameshi/policy"
)

// Gate lets the request through only when the access policy allows the
// feature for the current principal; otherwise it redirects.
func Gate(feature policy.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !controllers.Authorize(c, policy.Request{Feature: feature}) {
			c.Abort()
			return
		}
		c.Next()
	}
}

// Guest keeps signed in principals off the login and registration pages.
func Guest() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := controllers.CurrentPrincipal(c)
		switch {
		case p.IsAdministrator():
			c.Redirect(http.StatusFound, policy.AdminHomePath)
			c.Abort()
			return
		case p.IsMember():
			c.Redirect(http.StatusFound, policy.HomeFeature.Index)
			c.Abort()
			return
		}
		c.Next()
	}
}
