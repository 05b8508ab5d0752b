package billing

import (
	"time"

	"github.com/jinzhu/gorm"

	"nagoyameshi/models"
)

// Store is the local subscription record. It answers IsSubscribed for the
// gating policy without calling the provider.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) IsSubscribed(userID int64, plan string) (bool, error) {
	var count int
	err := s.db.Model(&models.Subscription{}).
		Where("user_id = ? AND name = ?", userID, plan).
		Where("stripe_status IN (?)", []string{models.SUBSCRIPTION_STATUS_ACTIVE, models.SUBSCRIPTION_STATUS_TRIALING}).
		Where("ends_at IS NULL OR ends_at > ?", s.now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Current returns the valid subscription for the plan, or ErrNotSubscribed.
func (s *Store) Current(userID int64, plan string) (models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.Where("user_id = ? AND name = ?", userID, plan).
		Order("created_at desc").
		Find(&subs).Error
	if err != nil {
		return models.Subscription{}, err
	}
	now := s.now()
	for _, sub := range subs {
		if sub.Valid(now) {
			return sub, nil
		}
	}
	return models.Subscription{}, ErrNotSubscribed
}

// PremiumCount counts users holding an active premium subscription.
func (s *Store) PremiumCount() (int, error) {
	var count int
	err := s.db.Model(&models.Subscription{}).
		Where("name = ? AND stripe_status = ?", models.PLAN_PREMIUM, models.SUBSCRIPTION_STATUS_ACTIVE).
		Count(&count).Error
	return count, err
}

func (s *Store) record(tx *gorm.DB, userID int64, plan string, sub Subscription) (models.Subscription, error) {
	row := models.Subscription{
		UserID:       userID,
		Name:         plan,
		StripeID:     sub.ID,
		StripeStatus: sub.Status,
		StripePrice:  sub.PriceID,
	}
	err := tx.Create(&row).Error
	return row, err
}

// cancel marks the subscription ended now and clears the stored card details
// of its owner. It must run inside tx.
func (s *Store) cancel(tx *gorm.DB, sub models.Subscription) error {
	now := s.now()
	err := tx.Model(&models.Subscription{}).Where("id = ?", sub.ID).Updates(map[string]interface{}{
		"stripe_status": models.SUBSCRIPTION_STATUS_CANCELED,
		"ends_at":       now,
	}).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.User{}).Where("id = ?", sub.UserID).Updates(map[string]interface{}{
		"pm_type":       gorm.Expr("NULL"),
		"pm_last_four":  gorm.Expr("NULL"),
		"trial_ends_at": gorm.Expr("NULL"),
	}).Error
}
