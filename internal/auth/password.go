package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// PasswordHasher performs one-way salted hashing of user passwords.
type PasswordHasher struct{}

// NewPasswordHasher creates a new password hasher.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{}
}

// Hash produces a salted bcrypt hash of the plaintext password.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash. A hash that fails to
// parse yields false rather than an error.
func (h *PasswordHasher) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
