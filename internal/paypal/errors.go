package paypal

import (
	"errors"
	"fmt"
)

// FlowError is the caller-visible error for a tokenization flow.
type FlowError struct {
	Code    string
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *FlowError) Unwrap() error {
	return e.Err
}

// Stable error codes surfaced to callers.
const (
	ErrCodeUnknown            = "UNKNOWN"
	ErrCodeDisabled           = "DISABLED"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeIntegration        = "INTEGRATION"
	ErrCodeReturnURLScheme    = "INTEGRATION_RETURN_URL_SCHEME"
	ErrCodeCanceled           = "CANCELED"
	ErrCodeUnexpectedResponse = "UNEXPECTED_RESPONSE"
)

func NewUnknownError(message string, err error) *FlowError {
	return &FlowError{
		Code:    ErrCodeUnknown,
		Message: message,
		Err:     err,
	}
}

func NewDisabledError() *FlowError {
	return &FlowError{
		Code:    ErrCodeDisabled,
		Message: "PayPal is not enabled for this merchant",
	}
}

func NewInvalidRequestError(message string) *FlowError {
	return &FlowError{
		Code:    ErrCodeInvalidRequest,
		Message: message,
	}
}

func NewIntegrationError(message string) *FlowError {
	return &FlowError{
		Code:    ErrCodeIntegration,
		Message: message,
	}
}

func NewReturnURLSchemeError(scheme string) *FlowError {
	return &FlowError{
		Code:    ErrCodeReturnURLScheme,
		Message: fmt.Sprintf("cannot handle return URL scheme %q: the scheme must be registered by the host application", scheme),
	}
}

func NewUnexpectedResponseError(err error) *FlowError {
	return &FlowError{
		Code:    ErrCodeUnexpectedResponse,
		Message: "received an unexpected browser switch return",
		Err:     err,
	}
}

// IsFlowError checks if an error is a FlowError and returns it.
func IsFlowError(err error) (*FlowError, bool) {
	var flowErr *FlowError
	ok := errors.As(err, &flowErr)
	return flowErr, ok
}

// IsErrorCode checks if an error is a FlowError with a specific code
func IsErrorCode(err error, code string) bool {
	if flowErr, ok := IsFlowError(err); ok {
		return flowErr.Code == code
	}
	return false
}
