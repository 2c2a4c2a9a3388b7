package bcrypt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gocrypt "golang.org/x/crypto/bcrypt"

	"backend/insurance-platform/app/pkg/bcrypt"
)

func TestNewBcrypt(t *testing.T) {
	tests := []struct {
		name         string
		cost         int
		expectedCost int
	}{
		{name: "valid cost", cost: 12, expectedCost: 12},
		{name: "below minimum", cost: 3, expectedCost: gocrypt.DefaultCost},
		{name: "above maximum", cost: 32, expectedCost: gocrypt.DefaultCost},
		{name: "minimum", cost: gocrypt.MinCost, expectedCost: gocrypt.MinCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := bcrypt.NewBcrypt(tt.cost)
			assert.Equal(t, tt.expectedCost, hasher.Cost())
		})
	}
}

func TestHashAndCheck(t *testing.T) {
	hasher := bcrypt.NewBcrypt(gocrypt.MinCost)

	hash, err := hasher.Hash("claims-admin-key")
	require.NoError(t, err)
	assert.NotEqual(t, "claims-admin-key", hash)

	ok, err := hasher.Matches("claims-admin-key", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Matches("another-key", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := hasher.Hash("claims-admin-key")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes are salted")
}

func TestEmptyInput(t *testing.T) {
	hasher := bcrypt.NewBcrypt(0)

	_, err := hasher.Hash("")
	assert.Error(t, err)

	_, err = hasher.Matches("", "hash")
	assert.Error(t, err)

	_, err = hasher.Matches("key", "")
	assert.Error(t, err)

	_, err = hasher.Matches("key", "not-a-bcrypt-hash")
	assert.Error(t, err)
}

func TestLongKeys(t *testing.T) {
	hasher := bcrypt.NewBcrypt(gocrypt.MinCost)
	key := strings.Repeat("k", 100)

	hash, err := hasher.Hash(key)
	require.NoError(t, err)

	ok, err := hasher.Matches(key, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Matches(strings.Repeat("k", 99)+"x", hash)
	require.NoError(t, err)
	assert.False(t, ok, "bytes past 72 still count")
}
