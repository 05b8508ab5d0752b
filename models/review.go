package models

import "time"

/************************************************
/**** MARK: REVIEW SCORE ****/
/************************************************/
const REVIEW_SCORE_MIN = 1
const REVIEW_SCORE_MAX = 5

// Review can only be changed or removed by its author (UserID).
type Review struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Score        int        `gorm:"not null" json:"score"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	RestaurantID int64      `gorm:"not null;index" json:"restaurant_id"`
	UserID       int64      `gorm:"not null;index" json:"user_id"`
	User         User       `gorm:"association_autoupdate:false;association_autocreate:false" json:"user"`
	CreatedAt    *time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}
