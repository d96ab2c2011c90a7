package client

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrMissingToken is returned when a successful signup response carries no access token.
var ErrMissingToken = errors.New("response did not contain an access token")

// StatusError reports a non-success HTTP status from the auth service
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Body)
}

func newStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// Rejected reports that the service answered and refused, as opposed to the
// request never completing
func (e *StatusError) Rejected() bool {
	return true
}
