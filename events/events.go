// Package events publishes domain events (reservations, reviews, favorites,
// subscriptions) to a broker once the change is committed.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ReservationCreated    = "reservation.created"
	ReservationCancelled  = "reservation.cancelled"
	ReviewCreated         = "review.created"
	ReviewUpdated         = "review.updated"
	ReviewDeleted         = "review.deleted"
	FavoriteAdded         = "favorite.added"
	FavoriteRemoved       = "favorite.removed"
	SubscriptionCreated   = "subscription.created"
	SubscriptionCancelled = "subscription.cancelled"
)

type Event struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	UserID       int64     `json:"user_id"`
	RestaurantID int64     `json:"restaurant_id,omitempty"`
	SubjectID    int64     `json:"subject_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func New(kind string, userID, restaurantID, subjectID int64) Event {
	return Event{
		ID:           uuid.NewString(),
		Type:         kind,
		UserID:       userID,
		RestaurantID: restaurantID,
		SubjectID:    subjectID,
		OccurredAt:   time.Now().UTC(),
	}
}

func (e Event) payload() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error { return nil }

// PublishTimeout bounds how long Emit waits on the broker.
var PublishTimeout = 2 * time.Second

// Emit publishes e and logs a failure. The caller's response never depends on it.
func Emit(ctx context.Context, p Publisher, log *logrus.Logger, e Event) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()
	if err := p.Publish(ctx, e); err != nil && log != nil {
		log.WithFields(logrus.Fields{
			"event":   e.Type,
			"user_id": e.UserID,
			"error":   err,
		}).Warn("event publish failed")
	}
}
