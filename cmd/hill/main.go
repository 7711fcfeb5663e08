package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bradleypmartin/hillcipher/alphabet"
	"github.com/bradleypmartin/hillcipher/hill"
)

const (
	exitSuccess    = 0
	exitUsageError = 3
	exitKeyError   = 4
	exitInputError = 5
	exitLogicError = 7
)

func printUsageAndExit(name string) {
	name = filepath.Base(name)
	fmt.Printf(`
Usage:
  %s e(ncode) <key> <block size> <text>
  %s d(ecode) <key> <block size> <text>
  %s k(eygen) <passphrase> <block size>

The key must be exactly one letter shorter than the block size, and
the text length must be a multiple of the block size. All text is
lowercase a-z.

`, name, name, name)
	os.Exit(exitUsageError)
}

func exitWithError(op string, err error) {
	fmt.Fprintf(os.Stderr, "%s error: %s\n", op, err)
	switch {
	case errors.Is(err, hill.ErrInvalidKey):
		os.Exit(exitKeyError)
	case errors.Is(err, hill.ErrInvalidLength), errors.Is(err, alphabet.ErrInvalidCharacter):
		os.Exit(exitInputError)
	}
	os.Exit(exitLogicError)
}

func parseBlockSize(name, arg string) int {
	blockSize, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid block size %q\n", arg)
		printUsageAndExit(name)
	}
	return blockSize
}

func newCipher(name, key, blockSizeArg string) *hill.Cipher {
	cipher, err := hill.NewCipher(key, parseBlockSize(name, blockSizeArg))
	if err != nil {
		exitWithError("Key setup", err)
	}
	return cipher
}

func main() {
	name := os.Args[0]
	if len(os.Args) < 2 {
		printUsageAndExit(name)
	}

	switch strings.ToLower(os.Args[1]) {
	case "e":
		fallthrough
	case "encode":
		if len(os.Args) != 5 {
			printUsageAndExit(name)
		}
		cipher := newCipher(name, os.Args[2], os.Args[3])
		ciphertext, err := cipher.Encode(os.Args[4])
		if err != nil {
			exitWithError("Encode", err)
		}
		fmt.Printf("%s\n", ciphertext)

	case "d":
		fallthrough
	case "decode":
		if len(os.Args) != 5 {
			printUsageAndExit(name)
		}
		cipher := newCipher(name, os.Args[2], os.Args[3])
		plaintext, err := cipher.Decode(os.Args[4])
		if err != nil {
			exitWithError("Decode", err)
		}
		fmt.Printf("%s\n", plaintext)

	case "k":
		fallthrough
	case "keygen":
		if len(os.Args) != 4 {
			printUsageAndExit(name)
		}
		key, err := hill.DeriveKey(os.Args[2], parseBlockSize(name, os.Args[3]))
		if err != nil {
			exitWithError("Keygen", err)
		}
		fmt.Printf("%s\n", key)

	default:
		printUsageAndExit(name)
	}

	os.Exit(exitSuccess)
}
