package billingsvc

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/billing"
)

type stripeProvider struct {
	api      *client.API
	currency string
	logger   core.Logger
}

var _ billing.Provider = (*stripeProvider)(nil)

// NewStripeProvider returns a billing.Provider backed by Stripe.
// backends may be nil to use Stripe's default API endpoints.
func NewStripeProvider(key, currency string, logger core.Logger, backends *stripe.Backends) billing.Provider {
	return &stripeProvider{
		api:      client.New(key, backends),
		currency: currency,
		logger:   logger,
	}
}

func (p *stripeProvider) CreatePaymentIntent(ctx context.Context, amount float64) (billing.PaymentIntent, error) {
	cents := billing.ToCents(amount)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(p.currency),
	}
	params.Context = ctx
	params.SetIdempotencyKey(ksuid.New().String())

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		p.logger.Error(fmt.Sprintf("stripe: creating payment intent: %v", err), err)
		return billing.PaymentIntent{}, errors.Wrap(billing.ErrProvider, err.Error())
	}
	return billing.PaymentIntent{ClientSecret: pi.ClientSecret, Amount: cents}, nil
}

func (p *stripeProvider) CreateSubscription(ctx context.Context, customer billing.Customer, priceID string) (billing.Subscription, error) {
	customerID := customer.ID
	if customerID == "" {
		params := &stripe.CustomerParams{
			Email: stripe.String(customer.Email),
			Name:  stripe.String(customer.Name),
		}
		params.Context = ctx
		params.SetIdempotencyKey(ksuid.New().String())

		cus, err := p.api.Customers.New(params)
		if err != nil {
			p.logger.Error(fmt.Sprintf("stripe: creating customer: %v", err), err)
			return billing.Subscription{}, errors.Wrap(billing.ErrProvider, err.Error())
		}
		customerID = cus.ID
	}

	params := &stripe.SubscriptionParams{
		Customer:        stripe.String(customerID),
		Items:           []*stripe.SubscriptionItemsParams{{Price: stripe.String(priceID)}},
		PaymentBehavior: stripe.String("default_incomplete"),
	}
	params.AddExpand("latest_invoice.payment_intent")
	params.Context = ctx
	params.SetIdempotencyKey(ksuid.New().String())

	sub, err := p.api.Subscriptions.New(params)
	if err != nil {
		p.logger.Error(fmt.Sprintf("stripe: creating subscription: %v", err), err)
		return billing.Subscription{CustomerID: customerID}, errors.Wrap(billing.ErrProvider, err.Error())
	}

	res := billing.Subscription{ID: sub.ID, CustomerID: customerID}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		res.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return res, nil
}

func (p *stripeProvider) Live() bool { return true }
