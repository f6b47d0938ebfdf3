package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned before any network access when no
	// API key is available.
	ErrMissingCredential = errors.New("API Key not set")

	// ErrMalformedResponse is returned when a successful response does not
	// carry any candidate text.
	ErrMalformedResponse = errors.New("could not extract text from API response")
)

// RequestFailedError reports a non-success HTTP status.
type RequestFailedError struct {
	Status        int
	Reason        string
	ServerMessage string
}

func (e *RequestFailedError) Error() string {
	msg := fmt.Sprintf("API request failed: %d %s", e.Status, e.Reason)
	if e.ServerMessage != "" {
		msg += ". " + e.ServerMessage
	}
	return msg
}

// ContentBlockedError reports that the service withheld output because of
// its safety filter.
type ContentBlockedError struct {
	Reason string
}

func (e *ContentBlockedError) Error() string {
	return "content blocked by API: " + e.Reason
}

// IsPermanent reports whether err can not be fixed by calling the service
// again. Circuit breakers use it to ignore caller-side failures.
func IsPermanent(err error) bool {
	var blocked *ContentBlockedError
	return errors.Is(err, ErrMissingCredential) || errors.As(err, &blocked)
}
