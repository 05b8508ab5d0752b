package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nagoyameshi/billing"
	"nagoyameshi/models"
	"nagoyameshi/policy"
)

const (
	ctxPrincipalKey = "principal"
	ctxUserKey      = "auth_user"
	ctxAdminKey     = "auth_admin"
	ctxCheckerKey   = "subscription_checker"
)

// LoadPrincipal resolves who is acting on the request from the admin or user
// session cookie, or a Bearer token. Invalid or stale sessions are treated as
// anonymous; the gates decide what that means.
func LoadPrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxPrincipalKey, policy.AnonymousPrincipal())

		db, ok := database(c)
		if !ok {
			c.Abort()
			return
		}
		secret := ServicesInstance(c).Config.Security.JwtSecret

		for _, token := range sessionTokens(c) {
			claims, err := ParseSession(secret, token)
			if err != nil {
				continue
			}
			switch claims.Guard {
			case GuardAdmin:
				var admin models.Admin
				if err := db.First(&admin, claims.PrincipalID()).Error; err != nil {
					continue
				}
				c.Set(ctxAdminKey, admin)
				c.Set(ctxPrincipalKey, policy.AdminPrincipal(admin.ID))
			case GuardUser:
				var user models.User
				if err := db.First(&user, claims.PrincipalID()).Error; err != nil {
					continue
				}
				c.Set(ctxUserKey, user)
				c.Set(ctxPrincipalKey, policy.MemberPrincipal(user.ID))
			}
			break
		}

		c.Next()
	}
}

// sessionTokens lists candidate tokens, admin session first.
func sessionTokens(c *gin.Context) []string {
	var tokens []string
	if v, err := c.Cookie(AdminSessionCookie); err == nil && v != "" {
		tokens = append(tokens, v)
	}
	if v, err := c.Cookie(UserSessionCookie); err == nil && v != "" {
		tokens = append(tokens, v)
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		tokens = append(tokens, strings.TrimSpace(h[len("Bearer "):]))
	}
	return tokens
}

func CurrentPrincipal(c *gin.Context) policy.Principal {
	if v, ok := c.Get(ctxPrincipalKey); ok {
		if p, ok := v.(policy.Principal); ok {
			return p
		}
	}
	return policy.AnonymousPrincipal()
}

// GetUserLogged returns the member loaded by LoadPrincipal.
func GetUserLogged(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

func GetAdminLogged(c *gin.Context) (models.Admin, bool) {
	v, ok := c.Get(ctxAdminKey)
	if !ok {
		return models.Admin{}, false
	}
	admin, ok := v.(models.Admin)
	return admin, ok
}

// Checker is the request's subscription checker. Answers are memoised for
// this request only, so a lapsed plan is noticed on the next one.
func Checker(c *gin.Context) policy.SubscriptionChecker {
	if v, ok := c.Get(ctxCheckerKey); ok {
		if checker, ok := v.(policy.SubscriptionChecker); ok {
			return checker
		}
	}
	db, _ := database(c)
	checker := policy.NewMemo(billing.NewStore(db))
	c.Set(ctxCheckerKey, checker)
	return checker
}

// Authorize runs the gating policy and performs the redirect on denial.
// It returns false when the handler must stop.
func Authorize(c *gin.Context, req policy.Request) bool {
	decision, err := policy.Decide(CurrentPrincipal(c), req, Checker(c))
	if err != nil {
		ServicesInstance(c).logger().WithError(err).Error("access decision failed")
		RespondError(c, "could not check access", http.StatusInternalServerError)
		c.Abort()
		return false
	}
	if decision.Allow {
		return true
	}
	if decision.Message != "" {
		setFlash(c, Flash{Kind: FlashError, Message: decision.Message})
	}
	redirect(c, decision.Redirect)
	return false
}

// isPremium reports whether the current member holds the premium plan.
func isPremium(c *gin.Context) (bool, error) {
	p := CurrentPrincipal(c)
	if !p.IsMember() {
		return false, nil
	}
	return Checker(c).IsSubscribed(p.ID, models.PLAN_PREMIUM)
}
