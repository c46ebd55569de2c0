package browserswitch

import (
	"errors"
	"fmt"
)

// ErrSessionCanceled is reported by an AuthenticationSession when the user
// dismissed the surface without completing approval.
var ErrSessionCanceled = errors.New("authentication session canceled by user")

// ErrNoReturnURLScheme is returned by Launch when no callback URL scheme
// was configured.
var ErrNoReturnURLScheme = errors.New("return URL scheme is not configured")

// SchemeOwnershipError is returned by Launch when the configured callback
// scheme does not belong to the host application.
type SchemeOwnershipError struct {
	Scheme   string
	BundleID string
}

func (e *SchemeOwnershipError) Error() string {
	return fmt.Sprintf("return URL scheme %q is not registered to application %q", e.Scheme, e.BundleID)
}

// ValidationError is returned when an inbound return URL fails structural
// validation. No field may be read from a URL that produced one.
type ValidationError struct {
	URL    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("unexpected return URL %q: %s", e.URL, e.Reason)
}

func IsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	ok := errors.As(err, &valErr)
	return valErr, ok
}
