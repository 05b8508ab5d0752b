package models

import "time"

/************************************************
/**** MARK: PARTY SIZE ****/
/************************************************/
const RESERVATION_PEOPLE_MIN = 1
const RESERVATION_PEOPLE_MAX = 50

type Reservation struct {
	ID               int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ReservedDatetime time.Time  `gorm:"column:reserved_datetime;not null;index" json:"reserved_datetime"`
	NumberOfPeople   int        `gorm:"column:number_of_people;not null" json:"number_of_people"`
	RestaurantID     int64      `gorm:"not null;index" json:"restaurant_id"`
	Restaurant       Restaurant `gorm:"association_autoupdate:false;association_autocreate:false" json:"restaurant"`
	UserID           int64      `gorm:"not null;index" json:"user_id"`
	CreatedAt        *time.Time `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}
