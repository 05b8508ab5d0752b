package models

import "time"

type Term struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Content   string     `gorm:"type:text;not null" json:"content" form:"content"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
