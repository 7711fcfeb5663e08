package hill

import (
	"fmt"

	goerrors "github.com/agilira/go-errors"

	"github.com/bradleypmartin/hillcipher/zmod"
)

// A KeySchedule expands a key vector into the key matrix of a Hill
// cipher and its inverse. The key matrix is the product of blockSize
// elementary transformations, one per row; each elementary
// transformation is the identity with row r overwritten so that entry
// (r, (r+1+j) mod blockSize) holds keyVector[j], wrapping around the
// row cyclically. The diagonal entry of the written row stays 1.
//
// Writing an elementary transformation as T = I + N with N strictly
// off-diagonal in a single row gives N*N = 0, so (2I - T) is the
// inverse of T. The inverse key matrix is the product of the
// elementary inverses in reverse order. Every key matrix built this
// way has determinant 1 and so is invertible for any modulus.
//
// Both matrices are computed at construction and never change;
// a KeySchedule is safe for concurrent use.
type KeySchedule struct {
	keyVector []int64
	blockSize int
	modulus   int64

	keyMatrix        zmod.Matrix
	keyMatrixInverse zmod.Matrix
}

// NewKeySchedule returns the key schedule for the given key vector,
// block size, and modulus. The key vector must have between 1 and
// blockSize-1 entries so that no entry lands on a diagonal; blockSize
// and the modulus must each be at least 2. It returns an error
// wrapping ErrInvalidKey otherwise.
func NewKeySchedule(keyVector []int64, blockSize int, modulus int64) (*KeySchedule, error) {
	if blockSize < 2 {
		richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("block size %d must be at least 2", blockSize))
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}
	if modulus < 2 {
		richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("modulus %d must be at least 2", modulus))
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}
	if len(keyVector) < 1 || len(keyVector) > blockSize-1 {
		richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("key vector length %d must be in [1, %d] for block size %d", len(keyVector), blockSize-1, blockSize))
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}

	ks := &KeySchedule{
		keyVector: append([]int64(nil), keyVector...),
		blockSize: blockSize,
		modulus:   modulus,
	}

	keyMatrix := ks.Elementary(0)
	for r := 1; r < blockSize; r++ {
		keyMatrix = keyMatrix.Times(ks.Elementary(r))
	}
	keyMatrixInverse := ks.ElementaryInverse(blockSize - 1)
	for r := blockSize - 2; r >= 0; r-- {
		keyMatrixInverse = keyMatrixInverse.Times(ks.ElementaryInverse(r))
	}
	ks.keyMatrix = keyMatrix
	ks.keyMatrixInverse = keyMatrixInverse

	// Verify the two matrices really are inverses before handing them
	// out. This can only fail if the construction above is broken, but
	// an unusable key must not survive construction.
	product := keyMatrix.Times(keyMatrixInverse)
	for i := 0; i < blockSize; i++ {
		for j := 0; j < blockSize; j++ {
			want := int64(0)
			if i == j {
				want = 1
			}
			if product.At(i, j) != want {
				richErr := goerrors.New(ErrCodeNotInvertible, fmt.Sprintf("key matrix is not invertible mod %d", modulus))
				return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
			}
		}
	}
	return ks, nil
}

// BlockSize returns the dimension of the key matrix.
func (ks *KeySchedule) BlockSize() int {
	return ks.blockSize
}

// Modulus returns the modulus of the key matrix.
func (ks *KeySchedule) Modulus() int64 {
	return ks.modulus
}

func (ks *KeySchedule) checkRowIndex(r int) {
	if r < 0 || r >= ks.blockSize {
		panic("row index out of bounds")
	}
}

// Elementary returns the elementary transformation for row r: the
// identity matrix with the key vector written into row r starting one
// column right of the diagonal, wrapping cyclically.
func (ks *KeySchedule) Elementary(r int) zmod.Matrix {
	ks.checkRowIndex(r)
	n := ks.blockSize
	return zmod.NewMatrixFromFunction(ks.modulus, n, n, func(i, j int) int64 {
		if i == j {
			return 1
		}
		if i != r {
			return 0
		}
		p := (j - r - 1 + n) % n
		if p < len(ks.keyVector) {
			return ks.keyVector[p]
		}
		return 0
	})
}

// ElementaryInverse returns the inverse of Elementary(r), which is
// 2I - Elementary(r): the same matrix with the off-diagonal row
// negated.
func (ks *KeySchedule) ElementaryInverse(r int) zmod.Matrix {
	e := ks.Elementary(r)
	n := ks.blockSize
	return zmod.NewMatrixFromFunction(ks.modulus, n, n, func(i, j int) int64 {
		if i == j {
			return e.At(i, j)
		}
		return -e.At(i, j)
	})
}

// KeyMatrix returns the key matrix, the product
// Elementary(0) * Elementary(1) * ... * Elementary(blockSize-1).
func (ks *KeySchedule) KeyMatrix() zmod.Matrix {
	return ks.keyMatrix
}

// KeyMatrixInverse returns the inverse of the key matrix, the product
// of the elementary inverses in reverse order.
func (ks *KeySchedule) KeyMatrixInverse() zmod.Matrix {
	return ks.keyMatrixInverse
}
