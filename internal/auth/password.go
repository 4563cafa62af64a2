package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost 8 is ~25ms per hash on small nodes. Hashes stored at any other cost are
// replaced on the holder's next successful login.
const bcryptCost = 8

// MaxPasswordBytes is the most bcrypt reads; anything longer would be silently truncated.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password is longer than 72 bytes")

func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// NeedsRehash reports whether a stored hash was made at a different cost.
func NeedsRehash(hashedPassword string) bool {
	cost, err := bcrypt.Cost([]byte(hashedPassword))
	return err != nil || cost != bcryptCost
}
