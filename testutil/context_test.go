package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greyskit/subtest/types"
)

func TestSetupContext(t *testing.T) {
	ctx := SetupContext()

	assert.Equal(t, types.DefaultTenantID, types.GetTenantID(ctx))
	assert.Equal(t, types.DefaultUserID, types.GetUserID(ctx))
	assert.NotEmpty(t, types.GetRequestID(ctx))

	// each context carries its own request id
	assert.NotEqual(t, types.GetRequestID(ctx), types.GetRequestID(SetupContext()))
}
