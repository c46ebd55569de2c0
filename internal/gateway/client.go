package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/wovenpay/paypal-switch/internal/config"
)

// Client is the boundary to the tokenization backend.
type Client interface {
	CreatePaymentResource(ctx context.Context, params map[string]any) (*HermesResponse, error)
	SetupBillingAgreement(ctx context.Context, params map[string]any) (*HermesResponse, error)
	TokenizePayPalAccount(ctx context.Context, req TokenizeRequest) (*TokenizeResponse, error)
	FetchConfiguration(ctx context.Context) (*ConfigurationResponse, error)
}

type HTTPClient struct {
	baseURL         string
	tokenizationKey string
	httpClient      *http.Client
}

func NewClient(cfg config.GatewayConfig) Client {
	return &HTTPClient{
		baseURL:         cfg.BaseURL,
		tokenizationKey: cfg.TokenizationKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *HTTPClient) CreatePaymentResource(ctx context.Context, params map[string]any) (*HermesResponse, error) {
	url := fmt.Sprintf("%s/v1/paypal_hermes/create_payment_resource", c.baseURL)
	return sendRequest[map[string]any, HermesResponse](c, ctx, http.MethodPost, url, &params)
}

func (c *HTTPClient) SetupBillingAgreement(ctx context.Context, params map[string]any) (*HermesResponse, error) {
	url := fmt.Sprintf("%s/v1/paypal_hermes/setup_billing_agreement", c.baseURL)
	return sendRequest[map[string]any, HermesResponse](c, ctx, http.MethodPost, url, &params)
}

func (c *HTTPClient) TokenizePayPalAccount(ctx context.Context, req TokenizeRequest) (*TokenizeResponse, error) {
	url := fmt.Sprintf("%s/v1/payment_methods/paypal_accounts", c.baseURL)
	return sendRequest[TokenizeRequest, TokenizeResponse](c, ctx, http.MethodPost, url, &req)
}

func (c *HTTPClient) FetchConfiguration(ctx context.Context) (*ConfigurationResponse, error) {
	url := fmt.Sprintf("%s/v1/configuration", c.baseURL)
	return sendRequest[any, ConfigurationResponse](c, ctx, http.MethodGet, url, nil)
}

func sendRequest[Req any, Resp any](c *HTTPClient, ctx context.Context, method, url string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.tokenizationKey != "" {
		httpReq.Header.Set("Client-Key", c.tokenizationKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, newGatewayError(errResp, resp.StatusCode)
	}

	var gatewayResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &gatewayResp, nil
}
