// Package hill implements the Hill cipher, a classical block cipher
// that encodes fixed-size blocks of text by multiplying them with an
// invertible matrix over the integers modulo the alphabet size.
//
// A cipher is built from a short textual key. The key expands to one
// elementary transformation per block row, and their product is the
// key matrix; the inverse key matrix comes from the elementary
// inverses, so key setup never needs a matrix inversion. Arbitrary
// key matrices are supported through NewCipherFromMatrix, which
// inverts them with the adjugate.
//
//	cipher, err := hill.NewCipher("mykey", 6)
//	if err != nil {
//		...
//	}
//	ciphertext, err := cipher.Encode("ibotta") // "knqttm"
//	plaintext, err := cipher.Decode(ciphertext)
//
// The Hill cipher is linear, so it falls to known-plaintext attacks.
// It is of historical and pedagogical interest only; do not use it to
// protect data.
package hill
