package billingsvc

import (
	"context"

	"github.com/trezcool/hustle/core/billing"
)

const (
	MockPaymentClientSecret      = "pi_mock_client_secret_for_demo"
	MockSubscriptionClientSecret = "seti_mock_client_secret_for_demo"
	MockSubscriptionID           = "sub_mock_subscription_id"
)

// mockProvider answers with fixed demo values. Used when no billing credentials are configured.
type mockProvider struct{}

var _ billing.Provider = (*mockProvider)(nil)

func NewMockProvider() billing.Provider {
	return mockProvider{}
}

func (mockProvider) CreatePaymentIntent(_ context.Context, amount float64) (billing.PaymentIntent, error) {
	return billing.PaymentIntent{
		ClientSecret: MockPaymentClientSecret,
		Amount:       billing.ToCents(amount),
	}, nil
}

func (mockProvider) CreateSubscription(_ context.Context, customer billing.Customer, _ string) (billing.Subscription, error) {
	return billing.Subscription{
		ID:           MockSubscriptionID,
		CustomerID:   customer.ID,
		ClientSecret: MockSubscriptionClientSecret,
	}, nil
}

func (mockProvider) Live() bool { return false }
