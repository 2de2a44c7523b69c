package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash stored on a user at signup. The
// cost comes from configuration; the plaintext is discarded by the
// caller once the hash exists.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword checks a login attempt against the stored hash. The
// comparison is constant-time with respect to the hash content.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
