package browserswitch_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wovenpay/paypal-switch/internal/browserswitch"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestValidateReturnURL_Success(t *testing.T) {
	ret, err := browserswitch.ValidateReturnURL(mustParse(t, "com.merchant.payments://onetouch/v1/success?token=EC-123&PayerID=ABC"))

	require.NoError(t, err)
	assert.Equal(t, browserswitch.ActionSuccess, ret.Action)
	assert.Equal(t, "EC-123", ret.Query["token"])
	assert.Equal(t, "ABC", ret.Query["PayerID"])
}

func TestValidateReturnURL_AllActions(t *testing.T) {
	for _, action := range []string{"success", "cancel", "authenticate"} {
		t.Run(action, func(t *testing.T) {
			ret, err := browserswitch.ValidateReturnURL(mustParse(t, "scheme://onetouch/v1/"+action+"?token=EC-123"))

			require.NoError(t, err)
			assert.Equal(t, browserswitch.Action(action), ret.Action)
		})
	}
}

func TestValidateReturnURL_Failures(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "missing scheme", url: "onetouch/v1/success?token=EC-123"},
		{name: "wrong prefix", url: "scheme://twotouch/v1/success?token=EC-123"},
		{name: "missing version segment", url: "scheme://onetouch/success?token=EC-123"},
		{name: "extra path segment", url: "scheme://onetouch/v1/success/extra?token=EC-123"},
		{name: "unknown action", url: "scheme://onetouch/v1/explode?token=EC-123"},
		{name: "action only in host", url: "scheme://success?token=EC-123"},
		{name: "empty action", url: "scheme://onetouch/v1/?token=EC-123"},
		{name: "missing query", url: "scheme://onetouch/v1/success"},
		{name: "cancel missing query", url: "scheme://onetouch/v1/cancel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := browserswitch.ValidateReturnURL(mustParse(t, tt.url))

			require.Error(t, err)
			_, ok := browserswitch.IsValidationError(err)
			assert.True(t, ok)
		})
	}
}

func TestValidateReturnURL_NilURL(t *testing.T) {
	_, err := browserswitch.ValidateReturnURL(nil)

	require.Error(t, err)
	_, ok := browserswitch.IsValidationError(err)
	assert.True(t, ok)
}
