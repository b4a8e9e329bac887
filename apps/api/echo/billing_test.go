package echoapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingApi(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name:     "payment intent",
			method:   http.MethodPost,
			path:     "/api/create-payment-intent",
			body:     `{"amount": 29.99}`,
			wantCode: http.StatusOK,
			wantData: []byte(`{"clientSecret": "pi_mock_client_secret_for_demo", "amount": 2999}`),
		},
		{name: "zero amount", method: http.MethodPost, path: "/api/create-payment-intent", body: `{"amount": 0}`, wantCode: http.StatusBadRequest},
		{name: "negative amount", method: http.MethodPost, path: "/api/create-payment-intent", body: `{"amount": -5}`, wantCode: http.StatusBadRequest},
		{
			name:     "subscription",
			method:   http.MethodPost,
			path:     "/api/create-subscription",
			wantCode: http.StatusOK,
			wantData: []byte(`{"subscriptionId": "sub_mock_subscription_id", "clientSecret": "seti_mock_client_secret_for_demo"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}

	// mock results are not linked to the user
	usr, err := app.usrRepo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, usr.StripeSubscriptionID)
}
