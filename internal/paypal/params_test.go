package paypal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wovenpay/paypal-switch/internal/paypal"
	"github.com/wovenpay/paypal-switch/internal/remoteconfig"
)

func testMerchantConfig() *remoteconfig.Configuration {
	return &remoteconfig.Configuration{
		PayPalEnabled:            true,
		Environment:              "offline",
		CurrencyIsoCode:          "USD",
		DisplayName:              "Configured Merchant",
		BillingAgreementsEnabled: true,
	}
}

func TestBuild_NilRequest(t *testing.T) {
	builder := paypal.NewParameterBuilder("com.merchant.app.payments")

	_, err := builder.Build(nil, testMerchantConfig(), false)

	require.Error(t, err)
	assert.True(t, paypal.IsErrorCode(err, paypal.ErrCodeInvalidRequest))
}

func TestBuild_OneTimePaymentWithoutAmount(t *testing.T) {
	builder := paypal.NewParameterBuilder("com.merchant.app.payments")

	_, err := builder.Build(&paypal.Request{}, testMerchantConfig(), false)

	require.Error(t, err)
	assert.True(t, paypal.IsErrorCode(err, paypal.ErrCodeInvalidRequest))
}

func TestBuild_BillingAgreementWithoutAmount(t *testing.T) {
	builder := paypal.NewParameterBuilder("com.merchant.app.payments")

	params, err := builder.Build(&paypal.Request{}, testMerchantConfig(), true)

	require.NoError(t, err)
	assert.NotContains(t, params, "amount")
	assert.NotContains(t, params, "currency_iso_code")
	assert.NotContains(t, params, "intent")
}

func TestBuild_OneTimePaymentDefaults(t *testing.T) {
	builder := paypal.NewParameterBuilder("com.merchant.app.payments")

	params, err := builder.Build(&paypal.Request{Amount: "12"}, testMerchantConfig(), false)

	require.NoError(t, err)
	assert.Equal(t, "authorize", params["intent"])
	assert.Equal(t, "12", params["amount"])
	assert.Equal(t, "USD", params["currency_iso_code"])
	assert.Equal(t, false, params["offer_paypal_credit"])
	assert.Equal(t, "com.merchant.app.payments://onetouch/v1/success", params["return_url"])
	assert.Equal(t, "com.merchant.app.payments://onetouch/v1/cancel", params["cancel_url"])

	profile, ok := params["experience_profile"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, profile["no_shipping"])
	assert.Equal(t, "Configured Merchant", profile["brand_name"])
	assert.Equal(t, false, profile["address_override"])
	assert.NotContains(t, profile, "locale_code")
	assert.NotContains(t, profile, "landing_page_type")
}

func TestBuild_RequestCurrencyWinsOverConfigured(t *testing.T) {
	builder := paypal.NewParameterBuilder("com.merchant.app.payments")

	params, err := builder.Build(&paypal.Request{Amount: "12", CurrencyCode: "EUR"}, testMerchantConfig(), false)

	require.NoError(t, err)
	assert.Equal(t, "EUR", params["currency_iso_code"])
}

func TestBuild_ExplicitIntentAndOptions(t *testing.T) {
	builder := paypal.NewParameterBuilder("com.merchant.app.payments")
	req := &paypal.Request{
		Amount:                    "9.99",
		Intent:                    paypal.IntentSale,
		LocaleCode:                "de_DE",
		LandingPage:               paypal.LandingPageBilling,
		MerchantAccountID:         "merchant-account",
		DisplayName:               "Override Brand",
		OfferCredit:               true,
		IsShippingAddressRequired: true,
	}

	params, err := builder.Build(req, testMerchantConfig(), false)

	require.NoError(t, err)
	assert.Equal(t, "sale", params["intent"])
	assert.Equal(t, true, params["offer_paypal_credit"])
	assert.Equal(t, "merchant-account", params["merchant_account_id"])

	profile := params["experience_profile"].(map[string]any)
	assert.Equal(t, false, profile["no_shipping"])
	assert.Equal(t, "Override Brand", profile["brand_name"])
	assert.Equal(t, "de_DE", profile["locale_code"])
	assert.Equal(t, "billing", profile["landing_page_type"])
}

func TestBuild_BillingAgreementDescription(t *testing.T) {
	builder := paypal.NewParameterBuilder("com.merchant.app.payments")
	req := &paypal.Request{BillingAgreementDescription: "Monthly subscription"}

	params, err := builder.Build(req, testMerchantConfig(), true)

	require.NoError(t, err)
	assert.Equal(t, "Monthly subscription", params["description"])
}

func TestBuild_ShippingAddressShapes(t *testing.T) {
	address := &paypal.PostalAddress{
		RecipientName:   "Grace Hopper",
		StreetAddress:   "1 Main St",
		ExtendedAddress: "Apt 2",
		Locality:        "Arlington",
		Region:          "VA",
		PostalCode:      "22201",
		CountryCode:     "US",
	}
	builder := paypal.NewParameterBuilder("com.merchant.app.payments")

	t.Run("billing agreement nests the address", func(t *testing.T) {
		params, err := builder.Build(&paypal.Request{ShippingAddressOverride: address}, testMerchantConfig(), true)

		require.NoError(t, err)
		nested, ok := params["shipping_address"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "1 Main St", nested["line1"])
		assert.Equal(t, "Grace Hopper", nested["recipient_name"])
		assert.NotContains(t, params, "line1")
	})

	t.Run("one-time payment flattens the address", func(t *testing.T) {
		params, err := builder.Build(&paypal.Request{Amount: "12", ShippingAddressOverride: address}, testMerchantConfig(), false)

		require.NoError(t, err)
		assert.Equal(t, "1 Main St", params["line1"])
		assert.Equal(t, "Apt 2", params["line2"])
		assert.Equal(t, "Arlington", params["city"])
		assert.Equal(t, "VA", params["state"])
		assert.Equal(t, "22201", params["postal_code"])
		assert.Equal(t, "US", params["country_code"])
		assert.Equal(t, "Grace Hopper", params["recipient_name"])
		assert.NotContains(t, params, "shipping_address")

		profile := params["experience_profile"].(map[string]any)
		assert.Equal(t, true, profile["address_override"])
	})
}

func TestBuild_LineItems(t *testing.T) {
	builder := paypal.NewParameterBuilder("com.merchant.app.payments")
	req := &paypal.Request{
		Amount: "20",
		LineItems: []paypal.LineItem{
			{Quantity: "2", UnitAmount: "10", Name: "Widget", Kind: paypal.LineItemKindDebit},
		},
	}

	params, err := builder.Build(req, testMerchantConfig(), false)

	require.NoError(t, err)
	items, ok := params["line_items"].([]paypal.LineItem)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].Name)
}
