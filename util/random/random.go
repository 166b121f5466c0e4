// Package random generates cryptographically random strings, used for token
// signing secrets.
package random

import (
	"crypto/rand"
	"math/big"
)

const alphanum = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Seq returns a random alphanumeric string of length n drawn from
// crypto/rand.
func Seq(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphanum)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		out[i] = alphanum[idx.Int64()]
	}
	return string(out)
}
