package api

import (
	"fmt"
	"net/http"
)

// RemoteError is returned for any non-2xx response from the backend.
type RemoteError struct {
	Status int
	// Message is the structured "message" field of a JSON error body, if any.
	Message string
	// Body is the raw response body.
	Body string
}

func (e *RemoteError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	case e.Body != "":
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, http.StatusText(e.Status))
}
