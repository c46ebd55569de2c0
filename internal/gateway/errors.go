package gateway

import (
	"errors"
	"fmt"
)

type GatewayError struct {
	Message    string
	Issue      string
	StatusCode int
}

// ErrorResponse is the error body shape returned by the gateway. Hermes
// failures additionally carry structured detail under paymentResource.
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	PaymentResource *struct {
		ErrorDetails []struct {
			Issue string `json:"issue"`
		} `json:"errorDetails"`
	} `json:"paymentResource"`
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error: %s (status: %d)", e.Message, e.StatusCode)
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}

// newGatewayError decodes an error body into a GatewayError. When the body
// carries a structured hermes issue and no human-readable message, the
// issue string is promoted to the visible message.
func newGatewayError(body ErrorResponse, statusCode int) *GatewayError {
	gwErr := &GatewayError{
		Message:    body.Error.Message,
		StatusCode: statusCode,
	}

	if body.PaymentResource != nil && len(body.PaymentResource.ErrorDetails) > 0 {
		gwErr.Issue = body.PaymentResource.ErrorDetails[0].Issue
		if gwErr.Message == "" {
			gwErr.Message = gwErr.Issue
		}
	}

	return gwErr
}
