package models

import "time"

/************************************************
/**** MARK: SUBSCRIPTION ****/
/************************************************/
const PLAN_PREMIUM = "premium_plan"

const SUBSCRIPTION_STATUS_ACTIVE = "active"
const SUBSCRIPTION_STATUS_TRIALING = "trialing"
const SUBSCRIPTION_STATUS_INCOMPLETE = "incomplete"
const SUBSCRIPTION_STATUS_CANCELED = "canceled"

// Subscription mirrors the billing provider's subscription for one named plan.
type Subscription struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID       int64      `gorm:"not null;index" json:"user_id"`
	Name         string     `gorm:"not null;index" json:"name"`
	StripeID     string     `gorm:"column:stripe_id;not null;unique" json:"stripe_id"`
	StripeStatus string     `gorm:"column:stripe_status;not null" json:"stripe_status"`
	StripePrice  string     `gorm:"column:stripe_price" json:"stripe_price"`
	EndsAt       *time.Time `gorm:"column:ends_at" json:"ends_at"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// Valid reports whether the subscription grants access at the given instant.
func (s Subscription) Valid(now time.Time) bool {
	if s.StripeStatus != SUBSCRIPTION_STATUS_ACTIVE && s.StripeStatus != SUBSCRIPTION_STATUS_TRIALING {
		return false
	}
	return s.EndsAt == nil || s.EndsAt.After(now)
}
