package hill

import (
	"crypto/sha256"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/crypto/hkdf"
)

// keygenSalt separates this derivation from other uses of the same
// passphrase. Changing it changes every derived key.
var keygenSalt = []byte("hillcipher/keygen/v1")

// DeriveKey derives a cipher key of blockSize-1 lowercase letters
// from a passphrase, using HKDF over SHA-256. The same passphrase and
// block size always yield the same key, so only the passphrase needs
// to be remembered. Keys for different block sizes are unrelated.
func DeriveKey(passphrase string, blockSize int) (string, error) {
	if passphrase == "" {
		richErr := goerrors.New(ErrCodeEmptyPassphrase, "passphrase must not be empty")
		return "", fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}
	if blockSize < 2 {
		richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("block size %d must be at least 2", blockSize))
		return "", fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}

	info := []byte(fmt.Sprintf("blockSize=%d", blockSize))
	raw := make([]byte, blockSize-1)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(passphrase), keygenSalt, info), raw); err != nil {
		richErr := goerrors.Wrap(err, ErrCodeInvalidKey, fmt.Sprintf("cannot derive %d key letters", blockSize-1))
		return "", fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}

	key := make([]byte, len(raw))
	for i, b := range raw {
		key[i] = 'a' + b%26
	}
	return string(key), nil
}
