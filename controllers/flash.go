package controllers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "flash"
	ctxFlashKey = "flash"

	FlashSuccess = "flash_message"
	FlashError   = "error_message"
	FlashInfo    = "info_message"
)

// Flash survives exactly one redirect: it is written as a cookie on the
// redirect response and consumed by the next request.
type Flash struct {
	Kind    string            `json:"kind,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Old     map[string]string `json:"old,omitempty"`
}

func EncodeFlash(f Flash) (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func DecodeFlash(value string) (Flash, error) {
	var f Flash
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return f, err
	}
	err = json.Unmarshal(data, &f)
	return f, err
}

// LoadFlash moves a pending flash cookie into the request context and clears it.
func LoadFlash() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, err := c.Cookie(flashCookie); err == nil && v != "" {
			if f, err := DecodeFlash(v); err == nil {
				c.Set(ctxFlashKey, f)
			}
			http.SetCookie(c.Writer, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})
		}
		c.Next()
	}
}

func CurrentFlash(c *gin.Context) (Flash, bool) {
	v, ok := c.Get(ctxFlashKey)
	if !ok {
		return Flash{}, false
	}
	f, ok := v.(Flash)
	return f, ok
}

func setFlash(c *gin.Context, f Flash) {
	value, err := EncodeFlash(f)
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func redirectWith(c *gin.Context, path, kind, message string) {
	setFlash(c, Flash{Kind: kind, Message: message})
	redirect(c, path)
}

// redirectInvalid sends the member back to the form with field errors and
// what they typed. Password fields are never echoed.
func redirectInvalid(c *gin.Context, path string, errs map[string]string) {
	old := map[string]string{}
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		_ = c.Request.ParseForm()
	}
	for k, v := range c.Request.PostForm {
		if len(v) == 0 || k == "password" || k == "password_confirmation" {
			continue
		}
		old[k] = v[0]
	}
	setFlash(c, Flash{Kind: FlashError, Errors: errs, Old: old})
	redirect(c, path)
}
