// Package password wraps the one-way hashing capability used for stored
// credentials. Hashing is CPU-bound and intentionally slow; nothing in this
// package ever logs or returns plaintext input.
package password

import "golang.org/x/crypto/bcrypt"

// Hash derives a bcrypt digest from a plaintext password.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plain matches the stored digest.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
