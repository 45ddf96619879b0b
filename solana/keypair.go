// Package solana handles authority keypairs: loading them from the
// formats the Solana CLI writes and producing the signed ownership
// proof the registry requires at publish time.
package solana

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"

	"github.com/0xsouravm/solpm/errors"
)

// ExpandPath substitutes a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// LoadKeypair reads an ed25519 keypair from disk. Both formats the
// Solana tooling produces are accepted: a JSON array of 64 numbers
// (solana-keygen) and raw 64 bytes. Paths may start with ~.
func LoadKeypair(path string) (types.Account, error) {
	expanded := ExpandPath(path)
	data, err := os.ReadFile(expanded)
	if err != nil {
		return types.Account{}, errors.Wrapf(errors.ErrInvalidPath, "failed to read keypair file '%s': %v", expanded, err)
	}

	var jsonBytes []byte
	if err := json.Unmarshal(data, &jsonBytes); err == nil && len(jsonBytes) == ed25519.PrivateKeySize {
		return accountFromBytes(jsonBytes)
	}

	if len(data) == ed25519.PrivateKeySize {
		return accountFromBytes(data)
	}

	return types.Account{}, errors.Wrap(errors.ErrInvalidPath,
		"invalid keypair file format: expected 64-byte keypair in JSON array or raw bytes format")
}

func accountFromBytes(key []byte) (types.Account, error) {
	account, err := types.AccountFromBytes(key)
	if err != nil {
		return types.Account{}, errors.Wrapf(errors.ErrInvalidPath, "invalid keypair: %v", err)
	}
	return account, nil
}

// PublishChallenge builds the message the authority signs to prove it
// controls the program being published.
func PublishChallenge(programID, network string, unixTime int64) string {
	return fmt.Sprintf("Publish program %s to %s registry at %d", programID, network, unixTime)
}

// SignChallenge signs a challenge with the authority key and returns
// the base58-encoded signature.
func SignChallenge(account types.Account, challenge string) string {
	signature := ed25519.Sign(account.PrivateKey, []byte(challenge))
	return base58.Encode(signature)
}

// PublicKeyBase58 returns the account's public key in its canonical
// base58 form.
func PublicKeyBase58(account types.Account) string {
	return account.PublicKey.ToBase58()
}

// ValidateProgramID checks that a string is a plausible on-chain
// address: base58 text decoding to exactly 32 bytes.
func ValidateProgramID(programID string) error {
	decoded, err := base58.Decode(programID)
	if err != nil {
		return errors.Wrapf(err, "program ID %q is not valid base58", programID)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return errors.Newf("program ID %q decodes to %d bytes, want %d", programID, len(decoded), ed25519.PublicKeySize)
	}
	return nil
}
