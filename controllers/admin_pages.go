package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nagoyameshi/models"
)

const (
	MessageCompanyUpdated = "会社概要を編集しました。"
	MessageTermUpdated    = "利用規約を編集しました。"

	adminCompanyPath = "/admin/company"
	adminTermsPath   = "/admin/terms"
)

type CompanyForm struct {
	Name              string `json:"name" form:"name" binding:"required,max=255"`
	PostalCode        string `json:"postal_code" form:"postal_code" binding:"required,postal_code"`
	Address           string `json:"address" form:"address" binding:"required,max=255"`
	Representative    string `json:"representative" form:"representative" binding:"required,max=255"`
	EstablishmentDate string `json:"establishment_date" form:"establishment_date" binding:"required,max=255"`
	Capital           string `json:"capital" form:"capital" binding:"required,max=255"`
	Business          string `json:"business" form:"business" binding:"required,max=255"`
	NumberOfEmployees string `json:"number_of_employees" form:"number_of_employees" binding:"required,max=255"`
}

type TermForm struct {
	Content string `json:"content" form:"content" binding:"required"`
}

func AdminCompany(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	company, err := firstCompany(db)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"company": company})
}

func AdminEditCompany(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var company models.Company
	if !findOr404(c, db, &company, id, "company") {
		return
	}
	RespondSuccess(c, gin.H{"company": company})
}

func AdminUpdateCompany(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var company models.Company
	if !findOr404(c, db, &company, id, "company") {
		return
	}

	var form CompanyForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, adminCompanyPath+"/"+strconv.FormatInt(id, 10)+"/edit", fieldErrors(err))
		return
	}
	err := db.Model(&company).Updates(map[string]interface{}{
		"name":                form.Name,
		"postal_code":         form.PostalCode,
		"address":             form.Address,
		"representative":      form.Representative,
		"establishment_date":  form.EstablishmentDate,
		"capital":             form.Capital,
		"business":            form.Business,
		"number_of_employees": form.NumberOfEmployees,
	}).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	redirectWith(c, adminCompanyPath, FlashSuccess, MessageCompanyUpdated)
}

func AdminTerms(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	term, err := firstTerm(db)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"term": term})
}

func AdminEditTerm(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var term models.Term
	if !findOr404(c, db, &term, id, "term") {
		return
	}
	RespondSuccess(c, gin.H{"term": term})
}

func AdminUpdateTerm(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var term models.Term
	if !findOr404(c, db, &term, id, "term") {
		return
	}

	var form TermForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, adminTermsPath+"/"+strconv.FormatInt(id, 10)+"/edit", fieldErrors(err))
		return
	}
	if err := db.Model(&term).Update("content", form.Content).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	redirectWith(c, adminTermsPath, FlashSuccess, MessageTermUpdated)
}
