package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nagoyameshi/billing"
	"nagoyameshi/events"
	"nagoyameshi/models"
	"nagoyameshi/policy"
)

const (
	subscriptionEditPath   = "/subscription/edit"
	subscriptionCancelPath = "/subscription/cancel"
)

type PaymentMethodForm struct {
	PaymentMethodID string `json:"paymentMethodId" form:"paymentMethodId" binding:"required"`
}

func billingService(c *gin.Context) (*billing.Service, bool) {
	s := ServicesInstance(c).Billing
	if s == nil || s.Provider == nil {
		RespondError(c, "billing not configured", http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

// member returns the logged in user together with the request's db and billing service.
func member(c *gin.Context) (models.User, *billing.Service, bool) {
	user, ok := GetUserLogged(c)
	if !ok {
		redirect(c, policy.LoginPath)
		return user, nil, false
	}
	svc, ok := billingService(c)
	return user, svc, ok
}

func CreateSubscription(c *gin.Context) {
	user, svc, ok := member(c)
	if !ok {
		return
	}
	db, _ := database(c)
	intent, err := svc.SetupIntent(c.Request.Context(), db, &user)
	if err != nil {
		redirectWith(c, policy.UserPath, FlashError, billing.MessageSetupFailed)
		return
	}
	RespondSuccess(c, gin.H{"intent": intent})
}

func StoreSubscription(c *gin.Context) {
	user, svc, ok := member(c)
	if !ok {
		return
	}
	db, _ := database(c)

	var form PaymentMethodForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, policy.SubscriptionCreatePath, fieldErrors(err))
		return
	}

	sub, err := svc.Subscribe(c.Request.Context(), db, &user, models.PLAN_PREMIUM, form.PaymentMethodID)
	var incomplete *billing.IncompletePaymentError
	switch {
	case errors.As(err, &incomplete):
		redirectWith(c, "/subscription/payment/"+incomplete.PaymentID, FlashInfo, billing.MessageIncomplete)
		return
	case err != nil:
		redirectWith(c, policy.SubscriptionCreatePath, FlashError, billing.UserMessage(err))
		return
	}

	ServicesInstance(c).emit(c, events.New(events.SubscriptionCreated, user.ID, 0, sub.ID))
	redirectWith(c, "/", FlashSuccess, billing.MessageSubscribed)
}

// ConfirmPayment is where an incomplete first payment is confirmed client side.
func ConfirmPayment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		RespondError(c, "id is required", http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"payment_id": id})
}

func EditSubscription(c *gin.Context) {
	user, svc, ok := member(c)
	if !ok {
		return
	}
	db, _ := database(c)
	ctx := c.Request.Context()

	intent, err := svc.SetupIntent(ctx, db, &user)
	if err != nil {
		redirectWith(c, policy.UserPath, FlashError, billing.MessageSetupFailed)
		return
	}
	pm, err := svc.DefaultPaymentMethod(ctx, user)
	if err != nil {
		redirectWith(c, policy.UserPath, FlashError, billing.MessagePaymentFailed)
		return
	}
	RespondSuccess(c, gin.H{"intent": intent, "payment_method": pm, "user": user})
}

func UpdateSubscription(c *gin.Context) {
	user, svc, ok := member(c)
	if !ok {
		return
	}
	db, _ := database(c)

	var form PaymentMethodForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, subscriptionEditPath, fieldErrors(err))
		return
	}

	if err := svc.UpdatePaymentMethod(c.Request.Context(), db, &user, form.PaymentMethodID); err != nil {
		message := billing.MessageUpdateFailed
		var card *billing.CardError
		if errors.As(err, &card) {
			message = billing.UserMessage(err)
		}
		redirectWith(c, subscriptionEditPath, FlashError, message)
		return
	}
	redirectWith(c, "/", FlashSuccess, billing.MessagePaymentUpdated)
}

func CancelSubscription(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		redirect(c, policy.LoginPath)
		return
	}
	RespondSuccess(c, gin.H{"user": user})
}

func DestroySubscription(c *gin.Context) {
	user, svc, ok := member(c)
	if !ok {
		return
	}
	db, _ := database(c)

	err := svc.CancelNow(c.Request.Context(), db, user, models.PLAN_PREMIUM)
	switch {
	case errors.Is(err, billing.ErrNotSubscribed):
		redirectWith(c, policy.UserPath, FlashError, billing.MessageNotSubscribed)
		return
	case err != nil:
		redirectWith(c, subscriptionCancelPath, FlashError, billing.MessageCancelFailed)
		return
	}

	ServicesInstance(c).emit(c, events.New(events.SubscriptionCancelled, user.ID, 0, 0))
	redirectWith(c, "/", FlashSuccess, billing.MessageSubscriptionDone)
}
