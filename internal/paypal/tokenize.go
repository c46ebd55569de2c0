package paypal

import (
	"context"
	"log/slog"

	"github.com/wovenpay/paypal-switch/internal/browserswitch"
	"github.com/wovenpay/paypal-switch/internal/fingerprint"
	"github.com/wovenpay/paypal-switch/internal/gateway"
)

// TokenizationCompleter exchanges a validated browser-switch return for an
// account nonce through the gateway.
type TokenizationCompleter struct {
	client       gateway.Client
	fingerprints fingerprint.Provider
	meta         gateway.Metadata
	logger       *slog.Logger
}

func NewTokenizationCompleter(
	client gateway.Client,
	fingerprints fingerprint.Provider,
	meta gateway.Metadata,
	logger *slog.Logger,
) *TokenizationCompleter {
	return &TokenizationCompleter{
		client:       client,
		fingerprints: fingerprints,
		meta:         meta,
		logger:       logger,
	}
}

// Complete builds the tokenization request from the validated return
// payload and maps the gateway response to an AccountNonce.
func (c *TokenizationCompleter) Complete(
	ctx context.Context,
	ret *browserswitch.Return,
	kind FlowKind,
	req *Request,
	pairingToken string,
) (*AccountNonce, error) {
	account := gateway.PayPalAccountParams{
		Response:      ret.Query,
		ResponseType:  "web",
		CorrelationID: c.fingerprints.ClientMetadataID(pairingToken),
	}

	if kind == FlowOneTimePayment {
		// Server-side validation is forced off for checkout; the original
		// intent rides along so the resource is processed as requested.
		account.Options = &gateway.TokenizeOptions{Validate: false}
		intent := req.Intent
		if intent == "" {
			intent = IntentAuthorize
		}
		account.Intent = string(intent)
	}

	tokenizeReq := gateway.TokenizeRequest{
		PayPalAccount:     account,
		MerchantAccountID: req.MerchantAccountID,
		Meta:              c.meta,
	}

	resp, err := c.client.TokenizePayPalAccount(ctx, tokenizeReq)
	if err != nil {
		c.logger.Error("tokenization failed", "kind", kind, "error", err)
		return nil, err
	}

	return nonceFromResponse(resp)
}

func nonceFromResponse(resp *gateway.TokenizeResponse) (*AccountNonce, error) {
	if resp == nil || len(resp.PayPalAccounts) == 0 {
		return nil, NewUnknownError("gateway response contained no PayPal account", nil)
	}
	account := resp.PayPalAccounts[0]

	nonce := &AccountNonce{
		Nonce:       account.Nonce,
		Description: account.Description,
		IsDefault:   account.Default,
		Email:       account.Details.Email,
	}

	if payer := account.Details.PayerInfo; payer != nil {
		if payer.Email != "" {
			nonce.Email = payer.Email
		}
		nonce.FirstName = payer.FirstName
		nonce.LastName = payer.LastName
		nonce.Phone = payer.Phone
		nonce.PayerID = payer.PayerID

		shipping := payer.ShippingAddress
		if shipping == nil {
			shipping = payer.AccountAddress
		}
		nonce.ShippingAddress = addressFromPayload(shipping)
		nonce.BillingAddress = addressFromPayload(payer.BillingAddress)
	}

	if offered := account.Details.CreditFinancingOffered; offered != nil {
		nonce.CreditFinancing = &CreditFinancing{
			CardAmountImmutable: offered.CardAmountImmutable,
			MonthlyPayment:      creditAmount(offered.MonthlyPayment),
			PayerAcceptance:     offered.PayerAcceptance,
			Term:                offered.Term,
			TotalCost:           creditAmount(offered.TotalCost),
			TotalInterest:       creditAmount(offered.TotalInterest),
		}
	}

	return nonce, nil
}

func addressFromPayload(payload *gateway.AddressPayload) *PostalAddress {
	if payload == nil {
		return nil
	}

	street := payload.Line1
	if street == "" {
		street = payload.Street1
	}
	extended := payload.Line2
	if extended == "" {
		extended = payload.Street2
	}

	return &PostalAddress{
		RecipientName:   payload.RecipientName,
		StreetAddress:   street,
		ExtendedAddress: extended,
		Locality:        payload.City,
		Region:          payload.State,
		PostalCode:      payload.PostalCode,
		CountryCode:     payload.CountryCode,
	}
}

func creditAmount(amount gateway.CreditFinancingAmount) CreditFinancingAmount {
	return CreditFinancingAmount{
		Currency: amount.Currency,
		Value:    amount.Value,
	}
}
