// Package paypal implements tokenization of PayPal accounts through a
// browser switch: the user approves the payment on a provider-hosted page
// and the redirect back into the host application is exchanged for a nonce.
package paypal

// Intent describes how a one-time payment should be processed server side.
type Intent string

const (
	IntentAuthorize Intent = "authorize"
	IntentSale      Intent = "sale"
	IntentOrder     Intent = "order"
)

// UserAction changes the call-to-action shown on the PayPal approval page.
type UserAction string

const (
	UserActionDefault UserAction = ""
	UserActionCommit  UserAction = "commit"
)

// LandingPage hints which approval page variant PayPal should present first.
type LandingPage string

const (
	LandingPageDefault LandingPage = ""
	LandingPageLogin   LandingPage = "login"
	LandingPageBilling LandingPage = "billing"
)

// FlowKind tags the two flow variants; they differ in required parameters
// and in the shape of the backend response.
type FlowKind string

const (
	FlowOneTimePayment   FlowKind = "single-payment"
	FlowBillingAgreement FlowKind = "billing-agreement"
)

// LineItemKind is the debit/credit direction of a line item.
type LineItemKind string

const (
	LineItemKindDebit  LineItemKind = "debit"
	LineItemKindCredit LineItemKind = "credit"
)

// LineItem is a single order line shown on the approval page.
type LineItem struct {
	Quantity      string       `json:"quantity"`
	UnitAmount    string       `json:"unit_amount"`
	Name          string       `json:"name"`
	Kind          LineItemKind `json:"kind"`
	UnitTaxAmount string       `json:"unit_tax_amount,omitempty"`
	Description   string       `json:"description,omitempty"`
	ProductCode   string       `json:"product_code,omitempty"`
	URL           string       `json:"url,omitempty"`
}

// PostalAddress is a shipping or billing address.
type PostalAddress struct {
	RecipientName   string `json:"recipientName,omitempty"`
	StreetAddress   string `json:"street1,omitempty"`
	ExtendedAddress string `json:"street2,omitempty"`
	Locality        string `json:"city,omitempty"`
	Region          string `json:"state,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	CountryCode     string `json:"country,omitempty"`
}

// Request describes the desired flow. It is created by the caller and
// treated as read-only once submitted.
type Request struct {
	// Amount and CurrencyCode apply to one-time payments only. Amount is
	// required there; CurrencyCode falls back to the merchant's configured
	// default when empty.
	Amount       string
	CurrencyCode string

	Intent     Intent
	UserAction UserAction

	// BillingAgreementDescription is shown to the user during a billing
	// agreement flow; ignored for one-time payments.
	BillingAgreementDescription string

	LocaleCode        string
	MerchantAccountID string
	LandingPage       LandingPage

	// DisplayName overrides the merchant name configured in the gateway.
	DisplayName string

	OfferCredit bool

	IsShippingAddressRequired bool
	ShippingAddressOverride   *PostalAddress

	LineItems []LineItem
}
