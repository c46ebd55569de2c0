package paypal

// AccountNonce is a tokenized PayPal account: a single-use credential the
// caller exchanges for a transaction server side.
type AccountNonce struct {
	Nonce       string
	Description string
	IsDefault   bool

	Email     string
	FirstName string
	LastName  string
	Phone     string
	PayerID   string
	ClientID  string

	BillingAddress  *PostalAddress
	ShippingAddress *PostalAddress

	// CreditFinancing is only present when the user accepted a PayPal
	// Credit financing offer during approval.
	CreditFinancing *CreditFinancing
}

// CreditFinancingAmount is a currency/value pair in a financing offer.
type CreditFinancingAmount struct {
	Currency string
	Value    string
}

// CreditFinancing describes the financing terms the payer accepted.
type CreditFinancing struct {
	CardAmountImmutable bool
	MonthlyPayment      CreditFinancingAmount
	PayerAcceptance     bool
	Term                int
	TotalCost           CreditFinancingAmount
	TotalInterest       CreditFinancingAmount
}
