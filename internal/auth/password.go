// Package auth provides the password-hashing capability and the session
// authentication strategy used by the HTTP layer.
package auth

import "golang.org/x/crypto/bcrypt"

// hashCost matches the cost the original deployment used for its player and
// administrator passwords.
const hashCost = 10

// HashPassword hashes a raw password with bcrypt. The output embeds a random
// salt, so hashing the same password twice yields different strings.
func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether raw matches the stored bcrypt hash.
func CheckPassword(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// BcryptHasher adapts HashPassword to the hashing capability the services
// consume.
type BcryptHasher struct{}

// Hash hashes a raw password with bcrypt.
func (BcryptHasher) Hash(raw string) (string, error) {
	return HashPassword(raw)
}
