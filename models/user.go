package models

import "time"

// User is a site member. Back-office accounts live in Admin.
type User struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name        string     `gorm:"not null" json:"name" form:"name"`
	Kana        string     `gorm:"not null;default:''" json:"kana" form:"kana"`
	Email       string     `gorm:"not null;unique" json:"email" form:"email"`
	Password    string     `gorm:"not null" json:"-"`
	PostalCode  string     `gorm:"column:postal_code;default:''" json:"postal_code" form:"postal_code"`
	Address     string     `gorm:"default:''" json:"address" form:"address"`
	PhoneNumber string     `gorm:"column:phone_number;default:''" json:"phone_number" form:"phone_number"`
	Birthday    string     `gorm:"default:''" json:"birthday" form:"birthday"`
	Occupation  string     `gorm:"default:''" json:"occupation" form:"occupation"`
	StripeID    *string    `gorm:"column:stripe_id;index" json:"-"`
	PmType      *string    `gorm:"column:pm_type" json:"pm_type"`
	PmLastFour  *string    `gorm:"column:pm_last_four" json:"pm_last_four"`
	TrialEndsAt *time.Time `gorm:"column:trial_ends_at" json:"trial_ends_at"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// HasStripeID reports whether the user is already a customer at the billing provider.
func (user User) HasStripeID() bool {
	return user.StripeID != nil && *user.StripeID != ""
}
