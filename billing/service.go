package billing

import (
	"context"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	dbpkg "nagoyameshi/db"
	"nagoyameshi/models"
)

// Service runs the subscription lifecycle: it calls the provider and keeps the
// local users/subscriptions rows in step with it.
type Service struct {
	Provider Provider
	PriceID  string
	Log      *logrus.Logger
}

func (s *Service) log(user models.User, err error) *logrus.Entry {
	l := s.Log
	if l == nil {
		l = logrus.StandardLogger()
	}
	return l.WithFields(logrus.Fields{"user_id": user.ID, "error": err})
}

// EnsureCustomer creates the provider customer on first use and stores its id.
func (s *Service) EnsureCustomer(ctx context.Context, db *gorm.DB, user *models.User) (string, error) {
	if user.HasStripeID() {
		return *user.StripeID, nil
	}
	id, err := s.Provider.CreateCustomer(ctx, Customer{Name: user.Name, Email: user.Email})
	if err != nil {
		return "", err
	}
	if err := db.Model(user).Update("stripe_id", id).Error; err != nil {
		return "", err
	}
	user.StripeID = &id
	return id, nil
}

func (s *Service) SetupIntent(ctx context.Context, db *gorm.DB, user *models.User) (SetupIntent, error) {
	customerID, err := s.EnsureCustomer(ctx, db, user)
	if err != nil {
		s.log(*user, err).Error("setup intent creation failed")
		return SetupIntent{}, err
	}
	intent, err := s.Provider.CreateSetupIntent(ctx, customerID)
	if err != nil {
		s.log(*user, err).Error("setup intent creation failed")
		return SetupIntent{}, err
	}
	return intent, nil
}

// Subscribe starts the plan with the given payment method. An incomplete first
// payment is still recorded locally (it does not grant access) and reported
// as *IncompletePaymentError.
func (s *Service) Subscribe(ctx context.Context, db *gorm.DB, user *models.User, plan, paymentMethodID string) (models.Subscription, error) {
	customerID, err := s.EnsureCustomer(ctx, db, user)
	if err != nil {
		s.log(*user, err).Error("subscription creation failed")
		return models.Subscription{}, err
	}

	pm, err := s.Provider.UpdateDefaultPaymentMethod(ctx, customerID, paymentMethodID)
	if err != nil {
		s.log(*user, err).Error("stripe card error")
		return models.Subscription{}, err
	}

	sub, subErr := s.Provider.CreateSubscription(ctx, customerID, s.PriceID, paymentMethodID)
	if subErr != nil && sub.ID == "" {
		s.log(*user, subErr).Error("subscription creation failed")
		return models.Subscription{}, subErr
	}

	var row models.Subscription
	err = dbpkg.Transaction(db, func(tx *gorm.DB) error {
		var err error
		if row, err = NewStore(tx).record(tx, user.ID, plan, sub); err != nil {
			return err
		}
		return tx.Model(user).Updates(map[string]interface{}{
			"pm_type":      pm.Brand,
			"pm_last_four": pm.Last4,
		}).Error
	})
	if err != nil {
		s.log(*user, err).Error("subscription could not be recorded")
		return models.Subscription{}, err
	}

	if subErr != nil {
		s.log(*user, subErr).Error("incomplete payment error")
		return row, subErr
	}
	return row, nil
}

func (s *Service) DefaultPaymentMethod(ctx context.Context, user models.User) (*PaymentMethod, error) {
	if !user.HasStripeID() {
		return nil, nil
	}
	pm, err := s.Provider.DefaultPaymentMethod(ctx, *user.StripeID)
	if err != nil {
		s.log(user, err).Error("payment method lookup failed")
	}
	return pm, err
}

// UpdatePaymentMethod replaces the default card and stores its brand and last digits.
func (s *Service) UpdatePaymentMethod(ctx context.Context, db *gorm.DB, user *models.User, paymentMethodID string) error {
	customerID, err := s.EnsureCustomer(ctx, db, user)
	if err != nil {
		s.log(*user, err).Error("payment method update failed")
		return err
	}
	pm, err := s.Provider.UpdateDefaultPaymentMethod(ctx, customerID, paymentMethodID)
	if err != nil {
		s.log(*user, err).Error("payment method update failed")
		return err
	}
	return db.Model(user).Updates(map[string]interface{}{
		"pm_type":      pm.Brand,
		"pm_last_four": pm.Last4,
	}).Error
}

// CancelNow ends the plan immediately. The local cancel and the card cleanup
// share one transaction, which is rolled back if the provider call fails.
func (s *Service) CancelNow(ctx context.Context, db *gorm.DB, user models.User, plan string) error {
	store := NewStore(db)
	sub, err := store.Current(user.ID, plan)
	if err != nil {
		return err
	}

	err = dbpkg.Transaction(db, func(tx *gorm.DB) error {
		if err := store.cancel(tx, sub); err != nil {
			return err
		}
		return s.Provider.CancelSubscriptionNow(ctx, sub.StripeID)
	})
	if err != nil {
		s.log(user, err).Error("subscription cancellation failed")
		return err
	}

	s.log(user, nil).Info("subscription cancelled")
	return nil
}
