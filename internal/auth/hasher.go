// Package auth provides credential hashing, sign-up/login and session tokens.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

const (
	saltBytes = 8 // 16 hex characters
)

// Hasher produces salted SHA-256 digests of passwords. Digest and salt are
// stored side by side, both as upper-case hex.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash generates a fresh salt and returns the digest of salt||password
// together with that salt. The empty password is hashed like any other.
func (h *Hasher) Hash(password string) (digest, salt string) {
	buf := make([]byte, saltBytes)
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(buf)

	salt = strings.ToUpper(hex.EncodeToString(buf))
	return digestOf(salt, password), salt
}

// Verify reports whether password hashed with salt equals digest exactly.
func (h *Hasher) Verify(password, digest, salt string) bool {
	return subtle.ConstantTimeCompare([]byte(digestOf(salt, password)), []byte(digest)) == 1
}

func digestOf(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
