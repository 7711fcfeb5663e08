// Package alphabet maps text to and from the integer vectors consumed
// by the cipher engine. The mapping is a fixed table per alphabet; no
// casing, padding, or non-letter handling happens here.
package alphabet

import (
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// ErrInvalidCharacter is returned when input text contains a character
// outside the alphabet, or when an integer has no character assigned
// to it. Match it with errors.Is.
var ErrInvalidCharacter = errors.New("alphabet: invalid character")

// Error codes for rich error handling.
const (
	ErrCodeInvalidCharacter = "ALPHABET_INVALID_CHARACTER"
	ErrCodeInvalidIndex     = "ALPHABET_INVALID_INDEX"
	ErrCodeBadAlphabet      = "ALPHABET_BAD_ALPHABET"
)

// An Alphabet is an ordered set of distinct characters, mapping each
// character to its position. It is immutable once constructed.
type Alphabet struct {
	letters []rune
	indexOf map[rune]int64
}

// New returns an Alphabet over the given characters in order. It
// fails if letters is empty or contains a character twice.
func New(letters string) (Alphabet, error) {
	if len(letters) == 0 {
		richErr := goerrors.New(ErrCodeBadAlphabet, "alphabet must have at least one character")
		return Alphabet{}, fmt.Errorf("invalid alphabet: %w", richErr)
	}
	runes := []rune(letters)
	indexOf := make(map[rune]int64, len(runes))
	for i, r := range runes {
		if _, ok := indexOf[r]; ok {
			richErr := goerrors.New(ErrCodeBadAlphabet, fmt.Sprintf("duplicate character %q", r))
			return Alphabet{}, fmt.Errorf("invalid alphabet: %w", richErr)
		}
		indexOf[r] = int64(i)
	}
	return Alphabet{runes, indexOf}, nil
}

func mustNew(letters string) Alphabet {
	a, err := New(letters)
	if err != nil {
		panic(err)
	}
	return a
}

// Lower is the standard lowercase alphabet, mapping a to 0 through z
// to 25. Its
// size, 26, is the usual modulus for textual block ciphers.
var Lower = mustNew("abcdefghijklmnopqrstuvwxyz")

// Size returns the number of characters in the alphabet.
func (a Alphabet) Size() int64 {
	return int64(len(a.letters))
}

// Index returns the position of r in the alphabet. It returns an
// error wrapping ErrInvalidCharacter if r is not in the alphabet.
func (a Alphabet) Index(r rune) (int64, error) {
	i, ok := a.indexOf[r]
	if !ok {
		richErr := goerrors.New(ErrCodeInvalidCharacter, fmt.Sprintf("character %q is not in the alphabet", r))
		return 0, fmt.Errorf("%w: %w", ErrInvalidCharacter, richErr)
	}
	return i, nil
}

// Rune returns the character at position x in the alphabet. It
// returns an error wrapping ErrInvalidCharacter if x is out of range.
func (a Alphabet) Rune(x int64) (rune, error) {
	if x < 0 || x >= a.Size() {
		richErr := goerrors.New(ErrCodeInvalidIndex, fmt.Sprintf("index %d is outside [0, %d)", x, a.Size()))
		return 0, fmt.Errorf("%w: %w", ErrInvalidCharacter, richErr)
	}
	return a.letters[x], nil
}

// ToVector maps s to the vector of alphabet positions of its
// characters.
func (a Alphabet) ToVector(s string) ([]int64, error) {
	v := make([]int64, 0, len(s))
	for _, r := range s {
		x, err := a.Index(r)
		if err != nil {
			return nil, err
		}
		v = append(v, x)
	}
	return v, nil
}

// ToText maps a vector of alphabet positions back to text. It is the
// inverse of ToVector.
func (a Alphabet) ToText(v []int64) (string, error) {
	runes := make([]rune, 0, len(v))
	for _, x := range v {
		r, err := a.Rune(x)
		if err != nil {
			return "", err
		}
		runes = append(runes, r)
	}
	return string(runes), nil
}
