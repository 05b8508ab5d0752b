package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"nagoyameshi/models"
	"nagoyameshi/policy"
)

const MessageProfileUpdated = "会員情報を編集しました。"

type ProfileForm struct {
	Name        string `json:"name" form:"name" binding:"required,max=255"`
	Kana        string `json:"kana" form:"kana" binding:"required,katakana,max=255"`
	Email       string `json:"email" form:"email" binding:"required,email,max=255"`
	PostalCode  string `json:"postal_code" form:"postal_code" binding:"required,postal_code"`
	Address     string `json:"address" form:"address" binding:"required,max=255"`
	PhoneNumber string `json:"phone_number" form:"phone_number" binding:"required,phone_jp"`
	Birthday    string `json:"birthday" form:"birthday" binding:"omitempty,birthday"`
	Occupation  string `json:"occupation" form:"occupation" binding:"omitempty,max=255"`
}

func Profile(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		redirect(c, policy.LoginPath)
		return
	}
	premium, err := isPremium(c)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"user": user, "premium": premium})
}

// loadOwnProfile resolves :id and stops unless it is the logged in member.
func loadOwnProfile(c *gin.Context) (models.User, bool) {
	id, ok := ParamID(c, "id")
	if !ok {
		return models.User{}, false
	}
	db, ok := database(c)
	if !ok {
		return models.User{}, false
	}
	var user models.User
	if !findOr404(c, db, &user, id, "user") {
		return models.User{}, false
	}
	if !Authorize(c, policy.Request{Feature: policy.ProfileFeature, Owned: true, OwnerID: user.ID}) {
		return models.User{}, false
	}
	return user, true
}

func EditProfile(c *gin.Context) {
	user, ok := loadOwnProfile(c)
	if !ok {
		return
	}
	RespondSuccess(c, gin.H{"user": user})
}

func UpdateProfile(c *gin.Context) {
	user, ok := loadOwnProfile(c)
	if !ok {
		return
	}
	db, _ := database(c)
	editPath := "/user/" + strconv.FormatInt(user.ID, 10) + "/edit"

	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, editPath, fieldErrors(err))
		return
	}
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))

	taken, err := emailTaken(c, form.Email, user.ID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if taken {
		redirectInvalid(c, editPath, map[string]string{"email": MessageEmailTaken})
		return
	}

	err = db.Model(&user).Updates(map[string]interface{}{
		"name":         form.Name,
		"kana":         form.Kana,
		"email":        form.Email,
		"postal_code":  form.PostalCode,
		"address":      form.Address,
		"phone_number": form.PhoneNumber,
		"birthday":     form.Birthday,
		"occupation":   form.Occupation,
	}).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	redirectWith(c, policy.UserPath, FlashSuccess, MessageProfileUpdated)
}
