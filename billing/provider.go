// Package billing is the boundary to the payment provider and the local record
// of who is subscribed to what.
package billing

import (
	"context"
	"errors"
	"fmt"
)

const (
	MessageCardError        = "カード情報の検証に失敗しました："
	MessageIncomplete       = "支払いの確認が必要です。"
	MessageCreateFailed     = "サブスクリプションの作成に失敗しました。"
	MessageSetupFailed      = "決済の準備に失敗しました。しばらく時間をおいて再度お試しください。"
	MessagePaymentFailed    = "支払い方法の取得に失敗しました。"
	MessageUpdateFailed     = "支払い方法の更新に失敗しました。"
	MessageCancelFailed     = "解約処理に失敗しました。"
	MessageNotSubscribed    = "有料プランに未登録です。"
	MessageSubscribed       = "有料プランへの登録が完了しました。"
	MessagePaymentUpdated   = "お支払い方法を変更しました。"
	MessageSubscriptionDone = "有料プランを解約しました。"
)

var ErrNotSubscribed = errors.New("billing: no active subscription")

// CardError is a declined or invalid card. Detail is the provider's message.
type CardError struct {
	Detail string
}

func (e *CardError) Error() string {
	return "billing: card error: " + e.Detail
}

// IncompletePaymentError means the subscription exists but its first payment
// needs confirmation (3-D Secure and the like).
type IncompletePaymentError struct {
	SubscriptionID string
	PaymentID      string
}

func (e *IncompletePaymentError) Error() string {
	return fmt.Sprintf("billing: subscription %s needs payment %s confirmed", e.SubscriptionID, e.PaymentID)
}

// UserMessage maps a provider failure to what the member is shown.
func UserMessage(err error) string {
	var card *CardError
	if errors.As(err, &card) {
		return MessageCardError + card.Detail
	}
	var incomplete *IncompletePaymentError
	if errors.As(err, &incomplete) {
		return MessageIncomplete
	}
	return MessageCreateFailed
}

type Customer struct {
	// ID is the provider customer id, empty until one is created.
	ID    string
	Name  string
	Email string
}

type SetupIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type PaymentMethod struct {
	ID    string `json:"id"`
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

type Subscription struct {
	ID      string
	Status  string
	PriceID string
}

// Provider is everything the application needs from the payment provider.
type Provider interface {
	CreateCustomer(ctx context.Context, c Customer) (string, error)
	CreateSetupIntent(ctx context.Context, customerID string) (SetupIntent, error)
	CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string) (Subscription, error)
	UpdateDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (PaymentMethod, error)
	DefaultPaymentMethod(ctx context.Context, customerID string) (*PaymentMethod, error)
	CancelSubscriptionNow(ctx context.Context, subscriptionID string) error
}
