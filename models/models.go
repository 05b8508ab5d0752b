package models

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Admin{},
		&Category{},
		&RegularHoliday{},
		&Restaurant{},
		&Review{},
		&Reservation{},
		&Favorite{},
		&Subscription{},
		&Company{},
		&Term{},
	}
}
