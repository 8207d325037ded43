// Package crypto provides credential hashing for Inventario.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost factor used for new hashes.
// Cost 10 is the interactive-login sweet spot: slow enough to resist
// offline brute force, fast enough not to stall a login request. Login
// latency in the tens of milliseconds is expected, not a bug.
const PasswordCost = 10

// HashPassword hashes a plaintext password with bcrypt.
// The digest is self-describing: it embeds the cost factor and a random
// per-call salt, so hashing the same password twice never yields the same
// digest.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt digest.
// The comparison recomputes with the parameters embedded in the digest and
// runs in constant time.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
