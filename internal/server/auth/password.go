package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitquest/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes password with bcrypt at the given cost. Passwords over
// 72 bytes are rejected with an error wrapping common.ErrorValidation.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares password against a bcrypt hash. A mismatch yields
// common.ErrIncorrectPassword.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return common.ErrIncorrectPassword
	}
	return err
}
