package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// MockGateway serves canned gateway responses. It backs the mock
// environment: the demo binary and the client tests run against it so no
// real transaction is ever created.
type MockGateway struct {
	// Enabled and BillingAgreementsEnabled control the configuration
	// document the mock serves.
	Enabled                  bool
	BillingAgreementsEnabled bool
	Environment              string
	CurrencyIsoCode          string
	DisplayName              string
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		Enabled:                  true,
		BillingAgreementsEnabled: true,
		Environment:              "offline",
		CurrencyIsoCode:          "USD",
		DisplayName:              "Mock Merchant",
	}
}

func (g *MockGateway) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/configuration", g.handleConfiguration).Methods(http.MethodGet)
	r.HandleFunc("/v1/paypal_hermes/create_payment_resource", g.handleCreatePaymentResource).Methods(http.MethodPost)
	r.HandleFunc("/v1/paypal_hermes/setup_billing_agreement", g.handleSetupBillingAgreement).Methods(http.MethodPost)
	r.HandleFunc("/v1/payment_methods/paypal_accounts", g.handleTokenize).Methods(http.MethodPost)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)
	return r
}

func (g *MockGateway) handleConfiguration(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ConfigurationResponse{
		PayPalEnabled: g.Enabled,
		PayPal: &PayPalConfiguration{
			Environment:              g.Environment,
			CurrencyIsoCode:          g.CurrencyIsoCode,
			DisplayName:              g.DisplayName,
			BillingAgreementsEnabled: g.BillingAgreementsEnabled,
		},
	})
}

func (g *MockGateway) handleCreatePaymentResource(w http.ResponseWriter, r *http.Request) {
	var params map[string]any
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	if _, ok := params["amount"]; !ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"paymentResource": map[string]any{
				"errorDetails": []map[string]string{{"issue": "AMOUNT_MISSING"}},
			},
		})
		return
	}

	writeJSON(w, http.StatusCreated, HermesResponse{
		PaymentResource: &PaymentResource{
			RedirectURL: fmt.Sprintf("https://checkout.sandbox.example.com/one-touch-login?token=EC-%s", uuid.New().String()),
		},
	})
}

func (g *MockGateway) handleSetupBillingAgreement(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, HermesResponse{
		AgreementSetup: &AgreementSetup{
			ApprovalURL: fmt.Sprintf("https://checkout.sandbox.example.com/agreements/approve?ba_token=BA-%s", uuid.New().String()),
		},
	})
}

func (g *MockGateway) handleTokenize(w http.ResponseWriter, r *http.Request) {
	var req TokenizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, TokenizeResponse{
		PayPalAccounts: []PayPalAccount{
			{
				Nonce:       uuid.New().String(),
				Description: "PayPal",
				Details: AccountDetails{
					Email: "mock@example.com",
					PayerInfo: &PayerInfo{
						Email:     "mock@example.com",
						FirstName: "Mocked",
						LastName:  "Payer",
						PayerID:   "FAKE-PAYER-ID",
					},
				},
			},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
