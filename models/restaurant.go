package models

import "time"

// Restaurant is a listed shop. Image holds the stored file name, not the bytes.
type Restaurant struct {
	ID              int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name            string     `gorm:"not null;index" json:"name"`
	Image           string     `gorm:"not null;default:''" json:"image"`
	Description     string     `gorm:"type:text" json:"description"`
	LowestPrice     int        `gorm:"column:lowest_price;not null;default:0" json:"lowest_price"`
	HighestPrice    int        `gorm:"column:highest_price;not null;default:0" json:"highest_price"`
	PostalCode      string     `gorm:"column:postal_code;not null" json:"postal_code"`
	Address         string     `gorm:"not null" json:"address"`
	OpeningTime     string     `gorm:"column:opening_time;not null" json:"opening_time"`
	ClosingTime     string     `gorm:"column:closing_time;not null" json:"closing_time"`
	SeatingCapacity int        `gorm:"column:seating_capacity;not null;default:0" json:"seating_capacity"`
	CreatedAt       *time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`

	Categories      []Category       `gorm:"many2many:category_restaurant;association_autoupdate:false;association_autocreate:false" json:"categories,omitempty"`
	RegularHolidays []RegularHoliday `gorm:"many2many:regular_holiday_restaurant;association_autoupdate:false;association_autocreate:false" json:"regular_holidays,omitempty"`
}

// CategoryIDs returns the ids of the loaded categories.
func (r Restaurant) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(r.Categories))
	for _, c := range r.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
