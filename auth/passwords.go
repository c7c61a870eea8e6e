package auth

import "golang.org/x/crypto/bcrypt"

// BcryptCost must stay at or above 12 per the business rules.
const BcryptCost = 12

// HashPassword returns a bcrypt hash of the plaintext password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// hash. bcrypt's comparison is constant-time over the hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
