package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := HashSecret("gateway-pass", 4)
	require.NoError(t, err)
	assert.True(t, VerifySecret(hash, "gateway-pass"))
	assert.False(t, VerifySecret(hash, "other"))
	assert.False(t, VerifySecret("not-a-hash", "gateway-pass"))
}
