package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CompareHashAndPassword(hash, "hunter2"))
	assert.False(t, CompareHashAndPassword(hash, "hunter3"))
	assert.False(t, CompareHashAndPassword("plain", "plain"))

	_, err = HashPassword(strings.Repeat("x", 73))
	assert.Error(t, err)
}
