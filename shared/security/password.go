package security

import (
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes plaintext passwords and verifies them against stored hashes.
type PasswordHasher interface {
	// Hash returns a salted, encoded hash of the password.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded hash.
	// A malformed hash never matches.
	Verify(password, hash string) bool
}

type argon2Hasher struct {
	config argon2.Config
}

// NewPasswordHasher returns an argon2id hasher using the library's default cost parameters.
// Verification also accepts bcrypt hashes so that records created by the previous
// backend keep working.
func NewPasswordHasher() PasswordHasher {
	return &argon2Hasher{config: argon2.DefaultConfig()}
}

// NewPasswordHasherWithConfig returns an argon2 hasher with custom cost parameters.
func NewPasswordHasherWithConfig(config argon2.Config) PasswordHasher {
	return &argon2Hasher{config: config}
}

func (h *argon2Hasher) Hash(password string) (string, error) {
	encoded, err := h.config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

func (h *argon2Hasher) Verify(password, hash string) bool {
	switch {
	case strings.HasPrefix(hash, "$argon2"):
		ok, err := argon2.VerifyEncoded([]byte(password), []byte(hash))
		return err == nil && ok
	case isBcryptHash(hash):
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	default:
		return false
	}
}

func isBcryptHash(hash string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}
