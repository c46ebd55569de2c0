package gateway

// HermesResponse covers both hermes endpoints; exactly one of the two
// fields is populated depending on the flow.
type HermesResponse struct {
	PaymentResource *PaymentResource `json:"paymentResource,omitempty"`
	AgreementSetup  *AgreementSetup  `json:"agreementSetup,omitempty"`
}

type PaymentResource struct {
	RedirectURL string `json:"redirectUrl"`
}

type AgreementSetup struct {
	ApprovalURL string `json:"approvalUrl"`
}

type TokenizeRequest struct {
	PayPalAccount     PayPalAccountParams `json:"paypal_account"`
	MerchantAccountID string              `json:"merchant_account_id,omitempty"`
	Meta              Metadata            `json:"_meta"`
}

type PayPalAccountParams struct {
	Response      map[string]string `json:"response"`
	ResponseType  string            `json:"response_type"`
	Options       *TokenizeOptions  `json:"options,omitempty"`
	Intent        string            `json:"intent,omitempty"`
	CorrelationID string            `json:"correlation_id,omitempty"`
}

type TokenizeOptions struct {
	Validate bool `json:"validate"`
}

// Metadata identifies where a tokenization request originated.
type Metadata struct {
	Source      string `json:"source"`
	Integration string `json:"integration"`
	SessionID   string `json:"sessionId"`
}

type TokenizeResponse struct {
	PayPalAccounts []PayPalAccount `json:"paypalAccounts"`
}

type PayPalAccount struct {
	Nonce       string         `json:"nonce"`
	Description string         `json:"description"`
	Default     bool           `json:"default"`
	Details     AccountDetails `json:"details"`
}

type AccountDetails struct {
	Email                  string           `json:"email"`
	PayerInfo              *PayerInfo       `json:"payerInfo"`
	CreditFinancingOffered *CreditFinancing `json:"creditFinancingOffered"`
}

type PayerInfo struct {
	Email           string          `json:"email"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Phone           string          `json:"phone"`
	PayerID         string          `json:"payerId"`
	ShippingAddress *AddressPayload `json:"shippingAddress"`
	BillingAddress  *AddressPayload `json:"billingAddress"`
	AccountAddress  *AddressPayload `json:"accountAddress"`
}

// AddressPayload tolerates the two address key sets the gateway emits:
// payerInfo addresses use line1/line2, account addresses use street1/street2.
type AddressPayload struct {
	RecipientName string `json:"recipientName"`
	Line1         string `json:"line1"`
	Line2         string `json:"line2"`
	Street1       string `json:"street1"`
	Street2       string `json:"street2"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	CountryCode   string `json:"countryCode"`
}

type CreditFinancing struct {
	CardAmountImmutable bool                  `json:"cardAmountImmutable"`
	MonthlyPayment      CreditFinancingAmount `json:"monthlyPayment"`
	PayerAcceptance     bool                  `json:"payerAcceptance"`
	Term                int                   `json:"term"`
	TotalCost           CreditFinancingAmount `json:"totalCost"`
	TotalInterest       CreditFinancingAmount `json:"totalInterest"`
}

type CreditFinancingAmount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// ConfigurationResponse is the merchant configuration document.
type ConfigurationResponse struct {
	PayPalEnabled bool                 `json:"paypalEnabled"`
	PayPal        *PayPalConfiguration `json:"paypal"`
}

type PayPalConfiguration struct {
	Environment              string `json:"environment"`
	ClientID                 string `json:"clientId"`
	CurrencyIsoCode          string `json:"currencyIsoCode"`
	DisplayName              string `json:"displayName"`
	BillingAgreementsEnabled bool   `json:"billingAgreementsEnabled"`
}
