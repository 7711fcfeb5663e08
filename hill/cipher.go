package hill

import (
	"fmt"

	goerrors "github.com/agilira/go-errors"

	"github.com/bradleypmartin/hillcipher/alphabet"
	"github.com/bradleypmartin/hillcipher/zmod"
)

// A Cipher encodes and decodes messages by multiplying blocks of
// blockSize integers with the key matrix, and decodes by multiplying
// with its inverse, all modulo the modulus. Messages are handled as
// strings over the lowercase alphabet, as integer vectors, or one
// block at a time.
//
// A Cipher is immutable and safe for concurrent use.
type Cipher struct {
	alphabet  alphabet.Alphabet
	blockSize int
	modulus   int64

	keyMatrix        zmod.Matrix
	keyMatrixInverse zmod.Matrix
}

// NewCipher returns a Cipher over the lowercase alphabet with the
// given key and block size. The key must be exactly blockSize-1
// letters of the alphabet.
func NewCipher(key string, blockSize int) (*Cipher, error) {
	return NewCipherModulus(key, blockSize, alphabet.Lower.Size())
}

// NewCipherModulus is like NewCipher but with an explicit modulus.
// Encode and Decode require the modulus to equal the alphabet size;
// the block and vector operations work with any modulus.
func NewCipherModulus(key string, blockSize int, modulus int64) (*Cipher, error) {
	keyVector, err := alphabet.Lower.ToVector(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	if len(keyVector) != blockSize-1 {
		richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("key %q has %d letters, want %d for block size %d", key, len(keyVector), blockSize-1, blockSize))
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}
	ks, err := NewKeySchedule(keyVector, blockSize, modulus)
	if err != nil {
		return nil, err
	}
	return &Cipher{
		alphabet:         alphabet.Lower,
		blockSize:        blockSize,
		modulus:          modulus,
		keyMatrix:        ks.KeyMatrix(),
		keyMatrixInverse: ks.KeyMatrixInverse(),
	}, nil
}

// NewCipherFromMatrix returns a Cipher using an arbitrary key matrix,
// which must be square, at least 2x2, and invertible for its modulus.
// The inverse is computed from the determinant and the adjugate, so
// it works for any modulus, prime or not. It returns an error
// wrapping ErrInvalidKey if the matrix has no inverse.
func NewCipherFromMatrix(keyMatrix zmod.Matrix) (*Cipher, error) {
	if keyMatrix.Rows() != keyMatrix.Columns() {
		richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("key matrix is %dx%d, want square", keyMatrix.Rows(), keyMatrix.Columns()))
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}
	if keyMatrix.Rows() < 2 {
		richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("block size %d must be at least 2", keyMatrix.Rows()))
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}
	keyMatrixInverse, err := keyMatrix.Inverse()
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeNotInvertible, fmt.Sprintf("key matrix has no inverse mod %d", keyMatrix.Modulus()))
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}
	return &Cipher{
		alphabet:         alphabet.Lower,
		blockSize:        keyMatrix.Rows(),
		modulus:          keyMatrix.Modulus(),
		keyMatrix:        keyMatrix,
		keyMatrixInverse: keyMatrixInverse,
	}, nil
}

// BlockSize returns the number of characters encoded at a time.
func (c *Cipher) BlockSize() int {
	return c.blockSize
}

// Modulus returns the modulus of the cipher's arithmetic.
func (c *Cipher) Modulus() int64 {
	return c.modulus
}

// KeyMatrix returns the matrix applied to blocks by Encode.
func (c *Cipher) KeyMatrix() zmod.Matrix {
	return c.keyMatrix
}

// KeyMatrixInverse returns the matrix applied to blocks by Decode.
func (c *Cipher) KeyMatrixInverse() zmod.Matrix {
	return c.keyMatrixInverse
}

func (c *Cipher) apply(m zmod.Matrix, message []int64) ([]int64, error) {
	if len(message)%c.blockSize != 0 {
		richErr := goerrors.New(ErrCodeInvalidLength, fmt.Sprintf("message length %d is not a multiple of the block size %d", len(message), c.blockSize))
		return nil, fmt.Errorf("%w: %w", ErrInvalidLength, richErr)
	}
	out := make([]int64, 0, len(message))
	for i := 0; i < len(message); i += c.blockSize {
		out = append(out, m.TimesVector(message[i:i+c.blockSize])...)
	}
	return out, nil
}

// EncodeBlock encodes a single block, which must have exactly
// blockSize entries. Entries may be unreduced; the result is reduced
// to [0, modulus).
func (c *Cipher) EncodeBlock(block []int64) ([]int64, error) {
	if len(block) != c.blockSize {
		richErr := goerrors.New(ErrCodeInvalidLength, fmt.Sprintf("block length %d, want %d", len(block), c.blockSize))
		return nil, fmt.Errorf("%w: %w", ErrInvalidLength, richErr)
	}
	return c.keyMatrix.TimesVector(block), nil
}

// DecodeBlock inverts EncodeBlock.
func (c *Cipher) DecodeBlock(block []int64) ([]int64, error) {
	if len(block) != c.blockSize {
		richErr := goerrors.New(ErrCodeInvalidLength, fmt.Sprintf("block length %d, want %d", len(block), c.blockSize))
		return nil, fmt.Errorf("%w: %w", ErrInvalidLength, richErr)
	}
	return c.keyMatrixInverse.TimesVector(block), nil
}

// EncodeVector encodes a message of whole blocks. The message length
// must be a multiple of the block size; there is no padding.
func (c *Cipher) EncodeVector(message []int64) ([]int64, error) {
	return c.apply(c.keyMatrix, message)
}

// DecodeVector inverts EncodeVector.
func (c *Cipher) DecodeVector(message []int64) ([]int64, error) {
	return c.apply(c.keyMatrixInverse, message)
}

func (c *Cipher) checkAlphabet() error {
	if c.alphabet.Size() != c.modulus {
		richErr := goerrors.New(ErrCodeAlphabetMismatch, fmt.Sprintf("alphabet size %d does not match modulus %d", c.alphabet.Size(), c.modulus))
		return fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}
	return nil
}

// Encode encodes a plaintext string over the lowercase alphabet. The
// plaintext length must be a multiple of the block size.
func (c *Cipher) Encode(plaintext string) (string, error) {
	if err := c.checkAlphabet(); err != nil {
		return "", err
	}
	message, err := c.alphabet.ToVector(plaintext)
	if err != nil {
		return "", err
	}
	encoded, err := c.EncodeVector(message)
	if err != nil {
		return "", err
	}
	return c.alphabet.ToText(encoded)
}

// Decode inverts Encode.
func (c *Cipher) Decode(ciphertext string) (string, error) {
	if err := c.checkAlphabet(); err != nil {
		return "", err
	}
	message, err := c.alphabet.ToVector(ciphertext)
	if err != nil {
		return "", err
	}
	decoded, err := c.DecodeVector(message)
	if err != nil {
		return "", err
	}
	return c.alphabet.ToText(decoded)
}
