package remote

import (
	"errors"
	"fmt"
)

// ErrNotVisible reports that a just-created resource did not show up within
// the bounded read-after-write window.
var ErrNotVisible = errors.New("resource not visible after retries")

// RemoteError is a non-2xx response surfaced as a typed failure. Transient
// failures (5xx, 429, transport timeouts) may be retried; the rest are
// validation rejections and must not be.
type RemoteError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
	Transient  bool
}

func (e *RemoteError) Error() string {
	kind := "rejected"
	if e.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("remote call %s: %s (%s)", e.Endpoint, e.Status, kind)
}

func newRemoteError(endpoint string, statusCode int, status, body string) *RemoteError {
	return &RemoteError{
		StatusCode: statusCode,
		Status:     status,
		Endpoint:   endpoint,
		Body:       body,
		Transient:  statusCode == 429 || statusCode >= 500,
	}
}

func IsTransient(err error) bool {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Transient
	}
	return false
}

func IsValidationRejection(err error) bool {
	var re *RemoteError
	if errors.As(err, &re) {
		return !re.Transient
	}
	return false
}
