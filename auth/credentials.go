// Package auth stores the registry API token on disk, encrypted with a
// password the user chooses at login. The token never touches disk in
// the clear: it is sealed with AES-256-GCM under a PBKDF2-derived key
// and kept in ~/.solpm/credentials.json.
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/0xsouravm/solpm/errors"
)

const (
	pbkdf2Iterations = 100_000
	keyLength        = 32
	saltLength       = 16
	nonceLength      = 12

	// TokenPrefix identifies registry API tokens.
	TokenPrefix = "spr_"
)

// Credentials is the on-disk form: every field base64-encoded.
type Credentials struct {
	EncryptedToken string `json:"encrypted_token"`
	Salt           string `json:"salt"`
	Nonce          string `json:"nonce"`
}

// ValidTokenFormat reports whether a token looks like a registry API
// token. Real validation happens against the registry; this only
// catches pasting the wrong thing.
func ValidTokenFormat(token string) bool {
	return strings.HasPrefix(token, TokenPrefix)
}

// CredentialsPath returns ~/.solpm/credentials.json, creating the
// directory if needed.
func CredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not find home directory")
	}
	configDir := filepath.Join(home, ".solpm")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", errors.Wrap(err, "creating .solpm directory")
	}
	return filepath.Join(configDir, "credentials.json"), nil
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)
}

// EncryptToken seals a token under a password-derived key. Salt and
// nonce are fresh random values per call.
func EncryptToken(token, password string) (*Credentials, error) {
	salt := make([]byte, saltLength)
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "generating salt")
	}
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(err, "generating nonce")
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, errors.Wrap(err, "initializing cipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "initializing GCM")
	}

	sealed := gcm.Seal(nil, nonce, []byte(token), nil)

	return &Credentials{
		EncryptedToken: base64.StdEncoding.EncodeToString(sealed),
		Salt:           base64.StdEncoding.EncodeToString(salt),
		Nonce:          base64.StdEncoding.EncodeToString(nonce),
	}, nil
}

// DecryptToken recovers the token. A wrong password surfaces as a GCM
// authentication failure.
func (c *Credentials) DecryptToken(password string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(c.EncryptedToken)
	if err != nil {
		return "", errors.Wrap(err, "invalid encrypted token")
	}
	salt, err := base64.StdEncoding.DecodeString(c.Salt)
	if err != nil {
		return "", errors.Wrap(err, "invalid salt")
	}
	nonce, err := base64.StdEncoding.DecodeString(c.Nonce)
	if err != nil {
		return "", errors.Wrap(err, "invalid nonce")
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return "", errors.Wrap(err, "initializing cipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.Wrap(err, "initializing GCM")
	}

	token, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.New("decryption failed. Incorrect password?")
	}
	return string(token), nil
}

// Save writes the credentials file.
func (c *Credentials) Save() error {
	path, err := CredentialsPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling credentials")
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(err, "writing credentials")
	}
	return nil
}

// Load reads the stored credentials. Returns (nil, nil) when none are
// stored, so callers can distinguish "not logged in" from real errors.
func Load() (*Credentials, error) {
	path, err := CredentialsPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading credentials")
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, errors.Wrap(err, "parsing credentials")
	}
	return &creds, nil
}

// HasStoredCredentials reports whether a credentials file exists,
// without prompting for a password.
func HasStoredCredentials() bool {
	path, err := CredentialsPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Delete removes the credentials file. Returns false when there was
// nothing to remove.
func Delete() (bool, error) {
	path, err := CredentialsPath()
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "removing credentials")
	}
	return true, nil
}
