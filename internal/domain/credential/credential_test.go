package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	stored := Hash("password123")

	ok, err := Verify(stored, "password123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(stored, "password124")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Verify(stored, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashEncoding(t *testing.T) {
	stored := Hash("secret")

	// "<hash_hex>:<salt_hex>" with a 64-char sha256 digest and a 16-char salt.
	parts := []rune(stored)
	assert.Len(t, parts, 64+1+16)
	assert.Equal(t, byte(':'), stored[64])
}

func TestHashIsDeterministic(t *testing.T) {
	// The salt is derived from the password, so equal passwords produce
	// identical credentials. Documented weakness of the stored format.
	assert.Equal(t, Hash("same-password"), Hash("same-password"))
	assert.NotEqual(t, Hash("password-a"), Hash("password-b"))
}

func TestVerifyMalformedCredential(t *testing.T) {
	ok, err := Verify("not-a-credential", "whatever")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrMalformedCredential)
}
