package models

import "time"

/************************************************
/**** MARK: REGULAR HOLIDAYS ****/
/************************************************/
// DayIndex follows time.Weekday; "不定休" (irregular) uses -1.
const REGULAR_HOLIDAY_IRREGULAR = -1

type RegularHoliday struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Day       string     `gorm:"not null;unique" json:"day"`
	DayIndex  int        `gorm:"column:day_index;not null" json:"day_index"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// DefaultRegularHolidays is the seed set: every weekday plus irregular closing.
func DefaultRegularHolidays() []RegularHoliday {
	days := []string{"日", "月", "火", "水", "木", "金", "土"}
	out := make([]RegularHoliday, 0, len(days)+1)
	for i, d := range days {
		out = append(out, RegularHoliday{Day: d, DayIndex: i})
	}
	return append(out, RegularHoliday{Day: "不定休", DayIndex: REGULAR_HOLIDAY_IRREGULAR})
}
