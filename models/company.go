package models

import "time"

// Company is the site operator profile; only the first row is used.
type Company struct {
	ID                int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name              string     `gorm:"not null" json:"name" form:"name"`
	PostalCode        string     `gorm:"column:postal_code" json:"postal_code" form:"postal_code"`
	Address           string     `json:"address" form:"address"`
	Representative    string     `json:"representative" form:"representative"`
	EstablishmentDate string     `gorm:"column:establishment_date" json:"establishment_date" form:"establishment_date"`
	Capital           string     `json:"capital" form:"capital"`
	Business          string     `gorm:"type:text" json:"business" form:"business"`
	NumberOfEmployees string     `gorm:"column:number_of_employees" json:"number_of_employees" form:"number_of_employees"`
	CreatedAt         *time.Time `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// PlaceholderCompany is shown when no company row exists yet.
func PlaceholderCompany() Company {
	return Company{Name: "会社名未設定"}
}
