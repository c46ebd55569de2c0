package browserswitch

import (
	"net/url"
	"strings"
)

// RedirectPrefix is the fixed host+path every return and cancel URL must
// carry under the caller-defined scheme.
const RedirectPrefix = "onetouch/v1/"

// Action is the trailing path segment of a return URL.
type Action string

const (
	ActionSuccess      Action = "success"
	ActionCancel       Action = "cancel"
	ActionAuthenticate Action = "authenticate"
)

// Return is a validated browser-switch return: the action plus the query
// payload the external surface sent back.
type Return struct {
	Action Action
	Query  map[string]string
	URL    *url.URL
}

// ValidateReturnURL checks the structure of an externally supplied URL and
// extracts its action and query. The URL is untrusted; callers must not
// read any field from it unless validation passes.
func ValidateReturnURL(u *url.URL) (*Return, error) {
	if u == nil {
		return nil, &ValidationError{URL: "", Reason: "missing URL"}
	}
	if u.Scheme == "" {
		return nil, &ValidationError{URL: u.String(), Reason: "missing scheme"}
	}

	hostPath := u.Host + u.Path
	action := u.Host
	if u.Path != "" {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		action = segments[len(segments)-1]
	}

	if strings.TrimSuffix(hostPath, action) != RedirectPrefix {
		return nil, &ValidationError{URL: u.String(), Reason: "host and path do not match the redirect prefix"}
	}
	if action == "" {
		return nil, &ValidationError{URL: u.String(), Reason: "missing action"}
	}

	switch Action(action) {
	case ActionSuccess, ActionCancel, ActionAuthenticate:
	default:
		return nil, &ValidationError{URL: u.String(), Reason: "unrecognized action " + action}
	}

	if u.RawQuery == "" {
		return nil, &ValidationError{URL: u.String(), Reason: "missing query payload"}
	}

	query := make(map[string]string)
	for key, values := range u.Query() {
		if len(values) > 0 {
			query[key] = values[0]
		}
	}

	return &Return{
		Action: Action(action),
		Query:  query,
		URL:    u,
	}, nil
}
