package commands

import (
	"fmt"

	"github.com/prooflab/redline/internal/api"
)

// apiErr wraps a failed backend call with its operation context. An expired
// or missing token is a user problem, not a transport problem, so auth
// failures become the login hint instead of the raw status line.
func apiErr(op string, err error) error {
	if api.IsAuth(err) {
		return fmt.Errorf("not logged in; run 'redline login'")
	}
	return fmt.Errorf("%s: %w", op, err)
}
