package gateway

import (
	"context"
	"sync"
)

// MockClient is an in-memory Client for tests. Each method records its
// calls and delegates to the corresponding Fn when set.
type MockClient struct {
	mu sync.Mutex

	CreatePaymentResourceFn func(ctx context.Context, params map[string]any) (*HermesResponse, error)
	SetupBillingAgreementFn func(ctx context.Context, params map[string]any) (*HermesResponse, error)
	TokenizePayPalAccountFn func(ctx context.Context, req TokenizeRequest) (*TokenizeResponse, error)
	FetchConfigurationFn    func(ctx context.Context) (*ConfigurationResponse, error)

	CreatePaymentResourceCalls []map[string]any
	SetupBillingAgreementCalls []map[string]any
	TokenizeCalls              []TokenizeRequest
	FetchConfigurationCalls    int
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) CreatePaymentResource(ctx context.Context, params map[string]any) (*HermesResponse, error) {
	m.mu.Lock()
	m.CreatePaymentResourceCalls = append(m.CreatePaymentResourceCalls, params)
	m.mu.Unlock()
	if m.CreatePaymentResourceFn != nil {
		return m.CreatePaymentResourceFn(ctx, params)
	}
	return &HermesResponse{PaymentResource: &PaymentResource{RedirectURL: "https://checkout.example.com/approve?token=EC-TEST"}}, nil
}

func (m *MockClient) SetupBillingAgreement(ctx context.Context, params map[string]any) (*HermesResponse, error) {
	m.mu.Lock()
	m.SetupBillingAgreementCalls = append(m.SetupBillingAgreementCalls, params)
	m.mu.Unlock()
	if m.SetupBillingAgreementFn != nil {
		return m.SetupBillingAgreementFn(ctx, params)
	}
	return &HermesResponse{AgreementSetup: &AgreementSetup{ApprovalURL: "https://checkout.example.com/agree?ba_token=BA-TEST"}}, nil
}

func (m *MockClient) TokenizePayPalAccount(ctx context.Context, req TokenizeRequest) (*TokenizeResponse, error) {
	m.mu.Lock()
	m.TokenizeCalls = append(m.TokenizeCalls, req)
	m.mu.Unlock()
	if m.TokenizePayPalAccountFn != nil {
		return m.TokenizePayPalAccountFn(ctx, req)
	}
	return &TokenizeResponse{
		PayPalAccounts: []PayPalAccount{{Nonce: "test-nonce"}},
	}, nil
}

func (m *MockClient) FetchConfiguration(ctx context.Context) (*ConfigurationResponse, error) {
	m.mu.Lock()
	m.FetchConfigurationCalls++
	m.mu.Unlock()
	if m.FetchConfigurationFn != nil {
		return m.FetchConfigurationFn(ctx)
	}
	return &ConfigurationResponse{
		PayPalEnabled: true,
		PayPal: &PayPalConfiguration{
			Environment:              "offline",
			CurrencyIsoCode:          "USD",
			DisplayName:              "Test Merchant",
			BillingAgreementsEnabled: true,
		},
	}, nil
}
