package models

import "time"

// Admin is the back-office principal. It never shares a table or a session with User.
type Admin struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Email     string     `gorm:"not null;unique" json:"email" form:"email"`
	Password  string     `gorm:"not null" json:"-"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
