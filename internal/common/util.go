package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes from the system CSPRNG.
// crypto/rand.Read never returns an error on supported platforms.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
