package internal

import (
	"crypto/rand"
	"math/big"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// idLength matches the 21-character random part of the original identifiers.
const idLength = 21

// NewID returns an opaque prefixed identifier such as "user_V1StGXR8Z5jdHi6BmyT9q".
// Row identity is never derived from the prefix; it exists purely so ids are
// recognizable in logs and foreign keys.
func NewID(prefix string) string {
	buf := make([]byte, idLength)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return prefix + string(buf)
}
