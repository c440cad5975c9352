// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// ProjectName validates a project name is non-empty after trimming
// whitespace. The backend enforces the same rule; checking here fails fast
// before a request is dispatched.
func ProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name is required")
	}
	return nil
}

// ProjectNameField returns a criterio validator for project names.
func ProjectNameField(field, name string) error {
	return criterio.Run(field, name, ProjectName)
}

// Email validates a plausible account email.
func Email(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return fmt.Errorf("not an email address")
	}
	return nil
}

// Required returns a validator that rejects blank values, naming the field
// in the error.
func Required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
