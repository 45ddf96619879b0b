package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	creds, err := EncryptToken("spr_abc123", "hunter2")
	require.NoError(t, err)

	token, err := creds.DecryptToken("hunter2")
	require.NoError(t, err)
	assert.Equal(t, "spr_abc123", token)
}

func TestDecryptWrongPassword(t *testing.T) {
	creds, err := EncryptToken("spr_abc123", "hunter2")
	require.NoError(t, err)

	_, err = creds.DecryptToken("hunter3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect password")
}

func TestEncryptionIsSalted(t *testing.T) {
	first, err := EncryptToken("spr_abc123", "hunter2")
	require.NoError(t, err)
	second, err := EncryptToken("spr_abc123", "hunter2")
	require.NoError(t, err)

	// Fresh salt and nonce per call: identical inputs never produce
	// identical ciphertext.
	assert.NotEqual(t, first.EncryptedToken, second.EncryptedToken)
	assert.NotEqual(t, first.Salt, second.Salt)
	assert.NotEqual(t, first.Nonce, second.Nonce)
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	creds, err := EncryptToken("spr_abc123", "hunter2")
	require.NoError(t, err)

	creds.EncryptedToken = "AAAA" + creds.EncryptedToken[4:]
	_, err = creds.DecryptToken("hunter2")
	assert.Error(t, err)
}

func TestCredentialsFileLifecycle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.False(t, HasStoredCredentials())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	creds, err := EncryptToken("spr_abc123", "hunter2")
	require.NoError(t, err)
	require.NoError(t, creds.Save())
	assert.True(t, HasStoredCredentials())

	loaded, err = Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	token, err := loaded.DecryptToken("hunter2")
	require.NoError(t, err)
	assert.Equal(t, "spr_abc123", token)

	removed, err := Delete()
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, HasStoredCredentials())

	removed, err = Delete()
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestValidTokenFormat(t *testing.T) {
	assert.True(t, ValidTokenFormat("spr_abc123"))
	assert.False(t, ValidTokenFormat("ghp_abc123"))
	assert.False(t, ValidTokenFormat(""))
}
