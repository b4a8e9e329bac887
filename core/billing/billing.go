// Package billing delegates payments and subscriptions to an external billing provider.
package billing

import (
	"context"
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/hustle/core/user"
)

var ErrProvider = errors.New("billing provider operation failed")

type (
	PaymentIntent struct {
		ClientSecret string `json:"clientSecret"`
		Amount       int64  `json:"amount,omitempty"` // cents
	}

	// Customer identifies the payer. ID is empty when the user has no billing customer yet.
	Customer struct {
		ID    string
		Email string
		Name  string
	}

	Subscription struct {
		ID           string `json:"subscriptionId"`
		CustomerID   string `json:"-"`
		ClientSecret string `json:"clientSecret"`
	}

	Provider interface {
		CreatePaymentIntent(ctx context.Context, amount float64) (PaymentIntent, error)
		// CreateSubscription may fail after creating the customer; CustomerID is then still set on the result.
		CreateSubscription(ctx context.Context, customer Customer, priceID string) (Subscription, error)
		// Live reports whether results refer to real billing-provider objects worth persisting.
		Live() bool
	}

	UserBillingUpdater interface {
		UpdateBillingInfo(ctx context.Context, id int, customerID, subscriptionID string) (user.User, error)
	}

	Service struct {
		provider Provider
		users    UserBillingUpdater
		priceID  string
	}
)

func NewService(provider Provider, users UserBillingUpdater, priceID string) *Service {
	return &Service{provider: provider, users: users, priceID: priceID}
}

// ToCents converts a decimal amount in the main currency unit to its smallest unit.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

type PaymentRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

func (pr PaymentRequest) Validate(validate *validator.Validate) error { return validate.Struct(pr) }

func (svc *Service) CreatePaymentIntent(ctx context.Context, pr PaymentRequest) (PaymentIntent, error) {
	pi, err := svc.provider.CreatePaymentIntent(ctx, pr.Amount)
	if err != nil {
		return PaymentIntent{}, pkgerrors.Wrap(err, "creating payment intent")
	}
	return pi, nil
}

// Subscribe starts a subscription for usr and links the billing references to them when the provider is live.
func (svc *Service) Subscribe(ctx context.Context, usr user.User) (Subscription, error) {
	cust := Customer{Email: usr.Email, Name: usr.Username}
	if usr.HasBillingCustomer() {
		cust.ID = *usr.StripeCustomerID
	}

	sub, err := svc.provider.CreateSubscription(ctx, cust, svc.priceID)
	if err != nil {
		// keep a newly created customer so that retries reuse it
		if svc.provider.Live() && sub.CustomerID != "" && sub.CustomerID != cust.ID {
			subID := ""
			if usr.StripeSubscriptionID != nil {
				subID = *usr.StripeSubscriptionID
			}
			if _, uErr := svc.users.UpdateBillingInfo(ctx, usr.ID, sub.CustomerID, subID); uErr != nil {
				return Subscription{}, pkgerrors.Wrapf(err, "creating subscription (saving customer: %v)", uErr)
			}
		}
		return Subscription{}, pkgerrors.Wrap(err, "creating subscription")
	}
	if !svc.provider.Live() {
		return sub, nil
	}
	if _, err := svc.users.UpdateBillingInfo(ctx, usr.ID, sub.CustomerID, sub.ID); err != nil {
		return Subscription{}, pkgerrors.Wrap(err, "saving billing info")
	}
	return sub, nil
}
