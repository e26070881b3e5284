// Package cryptox implements password hashing for the identity layer using
// argon2id with a per-user random salt.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing these invalidates stored hashes, so new
// parameters would require a hash-version column and rehash-on-login.
const (
	saltSize    = 16
	argonTime   = 1
	argonMemory = 64 * 1024
	argonLanes  = 4
	keyLength   = 32
)

// NewSalt returns a fresh random salt for a new user record.
func NewSalt() []byte {
	return common.GenerateRandByteArray(saltSize)
}

// HashPassword derives an argon2id hash of password with the given salt.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonLanes, keyLength)
}

// VerifyPassword reports whether candidate hashes to the stored value.
// The comparison is constant-time.
func VerifyPassword(hash, candidate, salt []byte) bool {
	derived := HashPassword(candidate, salt)
	return subtle.ConstantTimeCompare(hash, derived) == 1
}
