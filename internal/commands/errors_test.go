package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/redline/internal/api"
)

func TestAPIErrAuthBecomesLoginHint(t *testing.T) {
	err := apiErr("list projects", fmt.Errorf("request: %w", &api.Error{Status: 401, Path: "/projects"}))

	require.Error(t, err)
	assert.Equal(t, "not logged in; run 'redline login'", err.Error())
	assert.NotContains(t, err.Error(), "401")
}

func TestAPIErrForbiddenBecomesLoginHint(t *testing.T) {
	err := apiErr("upload", &api.Error{Status: 403, Path: "/projects/p1/documents"})

	require.Error(t, err)
	assert.Equal(t, "not logged in; run 'redline login'", err.Error())
}

func TestAPIErrKeepsOperationContext(t *testing.T) {
	backendErr := &api.Error{Status: 500, Path: "/runs", Detail: "boom"}

	err := apiErr("start run", backendErr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "start run")
	var apiError *api.Error
	require.True(t, errors.As(err, &apiError), "original error stays in the chain")
	assert.Equal(t, 500, apiError.Status)
}
