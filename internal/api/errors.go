package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx backend response. Auth errors (401/403) are never
// retried automatically; callers decide whether a failure is user-visible or
// a feature-detection signal (suggestion fetch falling back to legacy mode).
type Error struct {
	Status int
	Detail string
	Path   string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend %d on %s: %s", e.Status, e.Path, e.Detail)
	}
	return fmt.Sprintf("backend %d on %s", e.Status, e.Path)
}

// IsAuth reports whether err is a 401/403 backend response.
func IsAuth(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) &&
		(apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 backend response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
