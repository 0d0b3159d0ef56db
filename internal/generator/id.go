package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Alphabet is the set of symbols short codes are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the length of generated short codes.
const DefaultLength = 5

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// Generate returns a random code of the given length drawn uniformly from Alphabet.
func Generate(length int) (string, error) {
	if length < 0 {
		return "", errors.New("length must not be negative")
	}

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("generate: %w", err)
		}
		code[i] = Alphabet[n.Int64()]
	}

	return string(code), nil
}
