package models

import "time"

// Favorite is the restaurant_user pivot. One row per (user, restaurant).
type Favorite struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID       int64      `gorm:"not null;unique_index:ux_restaurant_user" json:"user_id"`
	RestaurantID int64      `gorm:"not null;unique_index:ux_restaurant_user;index" json:"restaurant_id"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func (Favorite) TableName() string {
	return "restaurant_user"
}
