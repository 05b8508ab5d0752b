package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nagoyameshi/models"
	"nagoyameshi/tools"
)

const (
	MessageLoginFailed = "メールアドレスまたはパスワードが正しくありません。"
	MessageEmailTaken  = "このメールアドレスは既に登録されています。"
)

type LoginForm struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RegisterForm struct {
	Name                 string `json:"name" form:"name" binding:"required,max=255"`
	Kana                 string `json:"kana" form:"kana" binding:"required,katakana,max=255"`
	Email                string `json:"email" form:"email" binding:"required,email,max=255"`
	Password             string `json:"password" form:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" binding:"required,eqfield=Password"`
	PostalCode           string `json:"postal_code" form:"postal_code" binding:"required,postal_code"`
	Address              string `json:"address" form:"address" binding:"required,max=255"`
	PhoneNumber          string `json:"phone_number" form:"phone_number" binding:"required,phone_jp"`
	Birthday             string `json:"birthday" form:"birthday" binding:"omitempty,birthday"`
	Occupation           string `json:"occupation" form:"occupation" binding:"omitempty,max=255"`
}

// FormPage renders an empty form; only the pending flash (errors, old input) matters.
func FormPage(c *gin.Context) {
	RespondSuccess(c, gin.H{})
}

func emailTaken(c *gin.Context, email string, exceptID int64) (bool, error) {
	db, ok := database(c)
	if !ok {
		return false, nil
	}
	var count int
	err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, exceptID).Count(&count).Error
	return count > 0, err
}

func Register(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, "/register", fieldErrors(err))
		return
	}
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))

	taken, err := emailTaken(c, form.Email, 0)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if taken {
		redirectInvalid(c, "/register", map[string]string{"email": MessageEmailTaken})
		return
	}

	hash, err := tools.HashPassword(form.Password)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	user := models.User{
		Name:        form.Name,
		Kana:        form.Kana,
		Email:       form.Email,
		Password:    hash,
		PostalCode:  form.PostalCode,
		Address:     form.Address,
		PhoneNumber: form.PhoneNumber,
		Birthday:    form.Birthday,
		Occupation:  form.Occupation,
	}
	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := startSession(c, GuardUser, user.ID); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	ServicesInstance(c).logger().WithField("user_id", user.ID).Info("member registered")
	redirect(c, "/")
}

func Login(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, "/login", fieldErrors(err))
		return
	}

	var user models.User
	email := strings.ToLower(strings.TrimSpace(form.Email))
	if err := db.Where("email = ?", email).First(&user).Error; err != nil || !tools.ComparePassword(user.Password, form.Password) {
		redirectInvalid(c, "/login", map[string]string{"email": MessageLoginFailed})
		return
	}

	if err := startSession(c, GuardUser, user.ID); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	redirect(c, "/")
}

func Logout(c *gin.Context) {
	endSession(c, GuardUser)
	redirect(c, "/")
}

func AdminLogin(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, "/admin/login", fieldErrors(err))
		return
	}

	var admin models.Admin
	email := strings.TrimSpace(form.Email)
	if err := db.Where("email = ?", email).First(&admin).Error; err != nil || !tools.ComparePassword(admin.Password, form.Password) {
		redirectInvalid(c, "/admin/login", map[string]string{"email": MessageLoginFailed})
		return
	}

	// A member session must not survive into the back office.
	endSession(c, GuardUser)
	if err := startSession(c, GuardAdmin, admin.ID); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	ServicesInstance(c).logger().WithField("admin_id", admin.ID).Info("admin logged in")
	redirect(c, "/admin/home")
}

func AdminLogout(c *gin.Context) {
	endSession(c, GuardAdmin)
	redirect(c, "/admin/login")
}
