package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v4"
)

const (
	GuardUser  = "user"
	GuardAdmin = "admin"

	UserSessionCookie  = "user_session"
	AdminSessionCookie = "admin_session"
)

// SessionClaims identify one principal. Guard keeps user and admin ids apart.
type SessionClaims struct {
	Guard string `json:"guard"`
	jwt.RegisteredClaims
}

func (s SessionClaims) PrincipalID() int64 {
	id, _ := strconv.ParseInt(s.Subject, 10, 64)
	return id
}

func IssueSession(secret, guard string, id int64, hours int) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Guard: guard,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour * time.Duration(hours))),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseSession(secret, token string) (SessionClaims, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return SessionClaims{}, err
	}
	if claims.PrincipalID() <= 0 || (claims.Guard != GuardUser && claims.Guard != GuardAdmin) {
		return SessionClaims{}, fmt.Errorf("session: malformed claims")
	}
	return claims, nil
}

func cookieFor(guard string) string {
	if guard == GuardAdmin {
		return AdminSessionCookie
	}
	return UserSessionCookie
}

func startSession(c *gin.Context, guard string, id int64) error {
	conf := ServicesInstance(c).Config
	hours := conf.Security.SessionHours
	if hours <= 0 {
		hours = 24
	}
	token, err := IssueSession(conf.Security.JwtSecret, guard, id, hours)
	if err != nil {
		return err
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cookieFor(guard),
		Value:    token,
		Path:     "/",
		MaxAge:   hours * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func endSession(c *gin.Context, guard string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cookieFor(guard),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
