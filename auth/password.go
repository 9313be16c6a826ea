package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor for newly created hashes.
// The factor is embedded in the hash itself, so raising it later does
// not invalidate hashes stored at the old cost.
const PasswordHashCost = 12

// HashPassword hashes an account password with bcrypt.
// Each call generates a fresh salt, so two hashes of the same password
// differ. The result is a self-describing string safe to store as text.
func HashPassword(password string) (string, error) {
	// bcrypt сам генерирует соль и встраивает её вместе с cost в результат
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", newError("failed to hash password", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
// A mismatch is (false, nil), not an error; only a malformed stored
// hash produces an *Error.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}

	// Несовпадение пароля - ожидаемый исход проверки, а не ошибка
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, newError("failed to verify password", err)
}
