package hill

import "errors"

// Sentinel errors returned by cipher construction and use. Match them
// with errors.Is; each is wrapped around a rich error carrying one of
// the codes below with the specific cause.
var (
	// ErrInvalidKey is returned when a cipher cannot be built from the
	// given key material, including when a key matrix has no inverse
	// for the modulus.
	ErrInvalidKey = errors.New("hill: invalid key")

	// ErrInvalidLength is returned when input length is not a
	// multiple of the cipher's block size.
	ErrInvalidLength = errors.New("hill: invalid length")
)

// Error codes for rich error handling.
const (
	ErrCodeInvalidKey       = "HILL_INVALID_KEY"
	ErrCodeNotInvertible    = "HILL_KEY_NOT_INVERTIBLE"
	ErrCodeInvalidLength    = "HILL_INVALID_LENGTH"
	ErrCodeAlphabetMismatch = "HILL_ALPHABET_MISMATCH"
	ErrCodeEmptyPassphrase  = "HILL_EMPTY_PASSPHRASE"
)
