package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnsupportedScheme is returned for sources with a scheme other
	// than http or https.
	ErrUnsupportedScheme = errors.New("unsupported scheme")

	// ErrBodyTooLarge is returned when a response body exceeds the size
	// cap.
	ErrBodyTooLarge = errors.New("response body too large")
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}
