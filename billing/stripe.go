package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider talks to Stripe. Subscriptions are created with
// payment_behavior=allow_incomplete so a payment needing confirmation comes back
// as an IncompletePaymentError rather than a hard failure.
type StripeProvider struct {
	api *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	return &StripeProvider{api: client.New(secretKey, nil)}
}

func (s *StripeProvider) CreateCustomer(ctx context.Context, c Customer) (string, error) {
	params := &stripe.CustomerParams{
		Name:  stripe.String(c.Name),
		Email: stripe.String(c.Email),
	}
	params.Context = ctx
	cust, err := s.api.Customers.New(params)
	if err != nil {
		return "", mapStripeError(err)
	}
	return cust.ID, nil
}

func (s *StripeProvider) CreateSetupIntent(ctx context.Context, customerID string) (SetupIntent, error) {
	params := &stripe.SetupIntentParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Usage:              stripe.String(string(stripe.SetupIntentUsageOffSession)),
	}
	params.Context = ctx
	si, err := s.api.SetupIntents.New(params)
	if err != nil {
		return SetupIntent{}, mapStripeError(err)
	}
	return SetupIntent{ID: si.ID, ClientSecret: si.ClientSecret}, nil
}

func (s *StripeProvider) CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string) (Subscription, error) {
	params := &stripe.SubscriptionParams{
		Customer:             stripe.String(customerID),
		Items:                []*stripe.SubscriptionItemsParams{{Price: stripe.String(priceID)}},
		DefaultPaymentMethod: stripe.String(paymentMethodID),
		PaymentBehavior:      stripe.String("allow_incomplete"),
	}
	params.Context = ctx
	params.AddExpand("latest_invoice.payment_intent")

	sub, err := s.api.Subscriptions.New(params)
	if err != nil {
		return Subscription{}, mapStripeError(err)
	}

	out := Subscription{ID: sub.ID, Status: string(sub.Status), PriceID: priceID}
	if sub.Status == stripe.SubscriptionStatusIncomplete {
		paymentID := ""
		if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
			paymentID = sub.LatestInvoice.PaymentIntent.ID
		}
		return out, &IncompletePaymentError{SubscriptionID: sub.ID, PaymentID: paymentID}
	}
	return out, nil
}

func (s *StripeProvider) UpdateDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (PaymentMethod, error) {
	attach := &stripe.PaymentMethodAttachParams{Customer: stripe.String(customerID)}
	attach.Context = ctx
	pm, err := s.api.PaymentMethods.Attach(paymentMethodID, attach)
	if err != nil {
		return PaymentMethod{}, mapStripeError(err)
	}

	update := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(pm.ID),
		},
	}
	update.Context = ctx
	if _, err := s.api.Customers.Update(customerID, update); err != nil {
		return PaymentMethod{}, mapStripeError(err)
	}
	return toPaymentMethod(pm), nil
}

func (s *StripeProvider) DefaultPaymentMethod(ctx context.Context, customerID string) (*PaymentMethod, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	params.AddExpand("invoice_settings.default_payment_method")
	cust, err := s.api.Customers.Get(customerID, params)
	if err != nil {
		return nil, mapStripeError(err)
	}
	if cust.InvoiceSettings == nil || cust.InvoiceSettings.DefaultPaymentMethod == nil {
		return nil, nil
	}
	pm := toPaymentMethod(cust.InvoiceSettings.DefaultPaymentMethod)
	return &pm, nil
}

func (s *StripeProvider) CancelSubscriptionNow(ctx context.Context, subscriptionID string) error {
	params := &stripe.SubscriptionCancelParams{}
	params.Context = ctx
	if _, err := s.api.Subscriptions.Cancel(subscriptionID, params); err != nil {
		return mapStripeError(err)
	}
	return nil
}

func toPaymentMethod(pm *stripe.PaymentMethod) PaymentMethod {
	out := PaymentMethod{ID: pm.ID}
	if pm.Card != nil {
		out.Brand = string(pm.Card.Brand)
		out.Last4 = pm.Card.Last4
	}
	return out
}

func mapStripeError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Type == stripe.ErrorTypeCard {
		return &CardError{Detail: se.Msg}
	}
	return fmt.Errorf("billing: stripe: %w", err)
}
