package hill

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bradleypmartin/hillcipher/alphabet"
	"github.com/bradleypmartin/hillcipher/zmod"
)

func testMessage(seed, length int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyz")
	message := make([]rune, length)
	for i := range message {
		message[i] = letters[(seed*7+i*13+seed*i)%26]
	}
	return string(message)
}

func TestEncodeWorkedExample(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	ciphertext, err := cipher.Encode("ibotta")
	require.NoError(t, err)
	require.Equal(t, "knqttm", ciphertext)

	plaintext, err := cipher.Decode("knqttm")
	require.NoError(t, err)
	require.Equal(t, "ibotta", plaintext)
}

func TestEncodeBlockWorkedExample(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	encoded, err := cipher.EncodeBlock([]int64{8, 1, 14, 19, 19, 0})
	require.NoError(t, err)
	require.Equal(t, []int64{10, 13, 16, 19, 19, 12}, encoded)

	decoded, err := cipher.DecodeBlock(encoded)
	require.NoError(t, err)
	require.Equal(t, []int64{8, 1, 14, 19, 19, 0}, decoded)
}

func TestEncodeBlockUnreducedEntries(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	encoded, err := cipher.EncodeBlock([]int64{8 - 26, 1 + 26, 14, 19 - 52, 19, 0})
	require.NoError(t, err)
	require.Equal(t, []int64{10, 13, 16, 19, 19, 12}, encoded)
}

func TestEncodeBlockInvalidLength(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	_, err = cipher.EncodeBlock([]int64{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidLength)
	_, err = cipher.DecodeBlock([]int64{1, 2, 3, 4, 5, 6, 7})
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestEncodeVector(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	encoded, err := cipher.EncodeVector([]int64{
		8, 1, 14, 19, 19, 0,
		8, 1, 14, 19, 19, 0,
	})
	require.NoError(t, err)
	require.Equal(t, []int64{
		10, 13, 16, 19, 19, 12,
		10, 13, 16, 19, 19, 12,
	}, encoded)

	decoded, err := cipher.DecodeVector(encoded)
	require.NoError(t, err)
	require.Equal(t, []int64{
		8, 1, 14, 19, 19, 0,
		8, 1, 14, 19, 19, 0,
	}, decoded)
}

func TestEncodeVectorInvalidLength(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	_, err = cipher.EncodeVector(make([]int64, 7))
	require.ErrorIs(t, err, ErrInvalidLength)
	_, err = cipher.DecodeVector(make([]int64, 11))
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestEncodeEmpty(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	ciphertext, err := cipher.Encode("")
	require.NoError(t, err)
	require.Equal(t, "", ciphertext)

	encoded, err := cipher.EncodeVector(nil)
	require.NoError(t, err)
	require.Empty(t, encoded)
}

func TestEncodeInvalidLength(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	_, err = cipher.Encode("short")
	require.ErrorIs(t, err, ErrInvalidLength)
	_, err = cipher.Decode("toolongbyone")
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestEncodeInvalidCharacter(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	for _, plaintext := range []string{"IBOTTA", "ibott ", "ibott!"} {
		_, err := cipher.Encode(plaintext)
		require.ErrorIs(t, err, alphabet.ErrInvalidCharacter, "plaintext=%q", plaintext)
		_, err = cipher.Decode(plaintext)
		require.ErrorIs(t, err, alphabet.ErrInvalidCharacter, "plaintext=%q", plaintext)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	first, err := cipher.Encode("ibotta")
	require.NoError(t, err)
	second, err := cipher.Encode("ibotta")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRoundTripProperty(t *testing.T) {
	for _, c := range []struct {
		key       string
		blockSize int
	}{
		{"k", 2},
		{"key", 4},
		{"mykey", 6},
		{"abcdefg", 8},
	} {
		cipher, err := NewCipher(c.key, c.blockSize)
		require.NoError(t, err)
		for blocks := 0; blocks <= 4; blocks++ {
			plaintext := testMessage(c.blockSize+blocks, blocks*c.blockSize)
			ciphertext, err := cipher.Encode(plaintext)
			require.NoError(t, err)
			decoded, err := cipher.Decode(ciphertext)
			require.NoError(t, err)
			require.Equal(t, plaintext, decoded, "key=%q, blocks=%d", c.key, blocks)
		}
	}
}

func TestNewCipherInvalid(t *testing.T) {
	// Key length must be exactly blockSize-1.
	_, err := NewCipher("mykey", 5)
	require.ErrorIs(t, err, ErrInvalidKey)
	_, err = NewCipher("mykey", 7)
	require.ErrorIs(t, err, ErrInvalidKey)
	_, err = NewCipher("", 2)
	require.ErrorIs(t, err, ErrInvalidKey)

	// Key characters must be in the alphabet.
	_, err = NewCipher("myKey", 6)
	require.ErrorIs(t, err, ErrInvalidKey)
	_, err = NewCipher("my key", 7)
	require.ErrorIs(t, err, alphabet.ErrInvalidCharacter)

	_, err = NewCipherModulus("mykey", 6, 1)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestNewCipherFromMatrix(t *testing.T) {
	// det 15, so the inverse exists mod 26 even though no entry of
	// the first column is a unit.
	keyMatrix := zmod.NewMatrixFromSlice(26, 2, 2, []int64{
		2, 1,
		13, 1,
	})
	cipher, err := NewCipherFromMatrix(keyMatrix)
	require.NoError(t, err)
	require.Equal(t, 2, cipher.BlockSize())
	require.Equal(t, int64(26), cipher.Modulus())

	plaintext := "somemessagex"
	ciphertext, err := cipher.Encode(plaintext)
	require.NoError(t, err)
	decoded, err := cipher.Decode(ciphertext)
	require.NoError(t, err)
	require.Equal(t, plaintext, decoded)
}

func TestNewCipherFromMatrixSingular(t *testing.T) {
	// det 18, and gcd(18, 26) = 2.
	_, err := NewCipherFromMatrix(zmod.NewMatrixFromSlice(26, 2, 2, []int64{
		2, 4,
		6, 8,
	}))
	require.ErrorIs(t, err, ErrInvalidKey)
	require.ErrorIs(t, err, zmod.ErrNotInvertible)

	// det 13 divides 26.
	_, err = NewCipherFromMatrix(zmod.NewMatrixFromSlice(26, 2, 2, []int64{
		13, 0,
		0, 1,
	}))
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestNewCipherFromMatrixShape(t *testing.T) {
	_, err := NewCipherFromMatrix(zmod.NewMatrixFromSlice(26, 2, 3, []int64{
		1, 2, 3,
		4, 5, 6,
	}))
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = NewCipherFromMatrix(zmod.NewMatrixFromSlice(26, 1, 1, []int64{3}))
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestNewCipherMatchesSchedule(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	fromMatrix, err := NewCipherFromMatrix(cipher.KeyMatrix())
	require.NoError(t, err)
	require.Equal(t, cipher.KeyMatrixInverse(), fromMatrix.KeyMatrixInverse())

	ciphertext, err := fromMatrix.Encode("ibotta")
	require.NoError(t, err)
	require.Equal(t, "knqttm", ciphertext)
}

func TestCipherModulusMismatchedAlphabet(t *testing.T) {
	cipher, err := NewCipherModulus("key", 4, 10)
	require.NoError(t, err)

	// The vector surface works with any modulus.
	encoded, err := cipher.EncodeVector([]int64{1, 2, 3, 4})
	require.NoError(t, err)
	decoded, err := cipher.DecodeVector(encoded)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3, 4}, decoded)

	// The string surface requires the modulus to match the alphabet.
	_, err = cipher.Encode("abcd")
	require.ErrorIs(t, err, ErrInvalidKey)
	_, err = cipher.Decode("abcd")
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestCipherConcurrent(t *testing.T) {
	cipher, err := NewCipher("mykey", 6)
	require.NoError(t, err)

	const goroutines = 8
	const iterations = 50

	errs := make(chan error, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				plaintext := testMessage(g*iterations+i, 6*(1+i%3))
				ciphertext, err := cipher.Encode(plaintext)
				if err != nil {
					errs <- err
					return
				}
				decoded, err := cipher.Decode(ciphertext)
				if err != nil {
					errs <- err
					return
				}
				if decoded != plaintext {
					errs <- fmt.Errorf("round trip mismatch: got %q, want %q", decoded, plaintext)
					return
				}
			}
			errs <- nil
		}(g)
	}
	wg.Wait()
	for g := 0; g < goroutines; g++ {
		require.NoError(t, <-errs)
	}
}

func benchmarkEncode(b *testing.B, blockSize, blocks int) {
	cipher, err := NewCipher(testMessage(3, blockSize-1), blockSize)
	require.NoError(b, err)
	message := testMessage(5, blockSize*blocks)
	b.SetBytes(int64(len(message)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cipher.Encode(message); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	for _, blockSize := range []int{2, 4, 8} {
		for _, blocks := range []int{1, 16, 256} {
			b.Run(fmt.Sprintf("blockSize=%d,blocks=%d", blockSize, blocks), func(b *testing.B) {
				benchmarkEncode(b, blockSize, blocks)
			})
		}
	}
}

func BenchmarkNewCipher(b *testing.B) {
	for _, blockSize := range []int{2, 4, 8, 16} {
		key := testMessage(7, blockSize-1)
		b.Run(fmt.Sprintf("blockSize=%d", blockSize), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := NewCipher(key, blockSize); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
