package paypal

import (
	"fmt"

	"github.com/wovenpay/paypal-switch/internal/browserswitch"
	"github.com/wovenpay/paypal-switch/internal/remoteconfig"
)

// ParameterBuilder maps a tokenization request and the merchant
// configuration into the hermes request parameters. It is a pure mapping;
// all failures are returned as InvalidRequest errors.
type ParameterBuilder struct {
	returnURLScheme string
}

func NewParameterBuilder(returnURLScheme string) *ParameterBuilder {
	return &ParameterBuilder{returnURLScheme: returnURLScheme}
}

func (b *ParameterBuilder) Build(req *Request, cfg *remoteconfig.Configuration, isBillingAgreement bool) (map[string]any, error) {
	if req == nil {
		return nil, NewInvalidRequestError("a request is required")
	}
	if !isBillingAgreement && req.Amount == "" {
		return nil, NewInvalidRequestError("an amount is required for a one-time payment")
	}

	params := map[string]any{
		"offer_paypal_credit": req.OfferCredit,
		"return_url":          fmt.Sprintf("%s://%s%s", b.returnURLScheme, browserswitch.RedirectPrefix, browserswitch.ActionSuccess),
		"cancel_url":          fmt.Sprintf("%s://%s%s", b.returnURLScheme, browserswitch.RedirectPrefix, browserswitch.ActionCancel),
	}

	experienceProfile := map[string]any{
		"no_shipping":      !req.IsShippingAddressRequired,
		"brand_name":       displayName(req, cfg),
		"address_override": req.ShippingAddressOverride != nil,
	}
	if req.LocaleCode != "" {
		experienceProfile["locale_code"] = req.LocaleCode
	}
	if req.LandingPage != LandingPageDefault {
		experienceProfile["landing_page_type"] = string(req.LandingPage)
	}
	params["experience_profile"] = experienceProfile

	if isBillingAgreement {
		if req.BillingAgreementDescription != "" {
			params["description"] = req.BillingAgreementDescription
		}
	} else {
		intent := req.Intent
		if intent == "" {
			intent = IntentAuthorize
		}
		params["intent"] = string(intent)
		params["amount"] = req.Amount

		currencyCode := req.CurrencyCode
		if currencyCode == "" {
			currencyCode = cfg.CurrencyIsoCode
		}
		params["currency_iso_code"] = currencyCode

		if len(req.LineItems) > 0 {
			params["line_items"] = req.LineItems
		}
	}

	if req.MerchantAccountID != "" {
		params["merchant_account_id"] = req.MerchantAccountID
	}

	if address := req.ShippingAddressOverride; address != nil {
		if isBillingAgreement {
			params["shipping_address"] = map[string]any{
				"line1":          address.StreetAddress,
				"line2":          address.ExtendedAddress,
				"city":           address.Locality,
				"state":          address.Region,
				"postal_code":    address.PostalCode,
				"country_code":   address.CountryCode,
				"recipient_name": address.RecipientName,
			}
		} else {
			params["line1"] = address.StreetAddress
			params["line2"] = address.ExtendedAddress
			params["city"] = address.Locality
			params["state"] = address.Region
			params["postal_code"] = address.PostalCode
			params["country_code"] = address.CountryCode
			params["recipient_name"] = address.RecipientName
		}
	}

	return params, nil
}

func displayName(req *Request, cfg *remoteconfig.Configuration) string {
	if req.DisplayName != "" {
		return req.DisplayName
	}
	return cfg.DisplayName
}
