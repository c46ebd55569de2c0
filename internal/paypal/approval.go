package paypal

import (
	"net/url"

	"github.com/wovenpay/paypal-switch/internal/browserswitch"
	"github.com/wovenpay/paypal-switch/internal/gateway"
	"github.com/wovenpay/paypal-switch/internal/remoteconfig"
)

// mockClientID is substituted in the mock environment when the gateway did
// not supply a client id, so downstream consumers never receive an empty
// required field.
const mockClientID = "mock-paypal-client-id"

// approvalURLMissingMessage is surfaced when neither hermes response shape
// carries an approval URL.
const approvalURLMissingMessage = "Failed to fetch PayPal approvalURL."

// ApprovalResolver extracts and decorates the approval URL from a hermes
// response and derives the context one transport strategy will consume.
type ApprovalResolver struct{}

func NewApprovalResolver() *ApprovalResolver {
	return &ApprovalResolver{}
}

func (r *ApprovalResolver) Resolve(resp *gateway.HermesResponse, req *Request, cfg *remoteconfig.Configuration) (*browserswitch.ApprovalContext, error) {
	rawURL := ""
	switch {
	case resp != nil && resp.PaymentResource != nil:
		rawURL = resp.PaymentResource.RedirectURL
	case resp != nil && resp.AgreementSetup != nil:
		rawURL = resp.AgreementSetup.ApprovalURL
	}
	if rawURL == "" {
		return nil, NewUnknownError(approvalURLMissingMessage, nil)
	}

	if req.UserAction != UserActionDefault {
		rawURL = appendUserAction(rawURL, req.UserAction)
	}

	approvalURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, NewUnknownError(approvalURLMissingMessage, err)
	}

	environment := resolveEnvironment(cfg.Environment)

	clientID := cfg.ClientID
	if clientID == "" && environment == browserswitch.EnvironmentMock {
		clientID = mockClientID
	}

	return &browserswitch.ApprovalContext{
		ApprovalURL:  approvalURL,
		PairingToken: pairingToken(approvalURL),
		ClientID:     clientID,
		Environment:  environment,
	}, nil
}

// appendUserAction adds useraction=<value> to the approval URL, preserving
// any existing query string.
func appendUserAction(rawURL string, action UserAction) string {
	delimiter := "?"
	if u, err := url.Parse(rawURL); err == nil && u.RawQuery != "" {
		delimiter = "&"
	}
	return rawURL + delimiter + "useraction=" + string(action)
}

// pairingToken is the correlation id embedded in the approval URL's query,
// named token for checkout and ba_token for billing agreements.
func pairingToken(approvalURL *url.URL) string {
	query := approvalURL.Query()
	if token := query.Get("token"); token != "" {
		return token
	}
	return query.Get("ba_token")
}

// resolveEnvironment maps the merchant-configured environment string. An
// unrecognized raw value is never echoed through; anything but "live"
// resolves to mock.
func resolveEnvironment(raw string) browserswitch.Environment {
	switch raw {
	case "live":
		return browserswitch.EnvironmentProduction
	case "offline":
		return browserswitch.EnvironmentMock
	default:
		return browserswitch.EnvironmentMock
	}
}
