package utils

import (
	"crypto/rand"
	"math/big"
)

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomToken returns length characters from [a-zA-Z0-9].
func GenerateRandomToken(length int) string {
	max := big.NewInt(int64(len(tokenCharset)))
	token := make([]byte, length)
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		token[i] = tokenCharset[n.Int64()]
	}
	return string(token)
}

// GenerateResetCode is the code mailed for a password reset.
func GenerateResetCode() string {
	return GenerateRandomToken(6)
}

// GenerateUID issues an identity uid for accounts registered without one.
func GenerateUID() string {
	return GenerateRandomToken(28)
}
