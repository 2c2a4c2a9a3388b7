package bcrypt

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var errEmptySecret = errors.New("secret cannot be empty")

type Bcrypt struct {
	cost int
}

// NewBcrypt falls back to the default cost when cost is out of range.
func NewBcrypt(cost int) Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Bcrypt{cost: cost}
}

func (b *Bcrypt) Cost() int {
	return b.cost
}

// Hash hashes the SHA-256 digest of secret, so keys longer than bcrypt's
// 72 byte limit keep every byte significant.
func (b *Bcrypt) Hash(secret string) (string, error) {
	if secret == "" {
		return "", errEmptySecret
	}

	hashed, err := bcrypt.GenerateFromPassword(digest(secret), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hashed), nil
}

func (b *Bcrypt) Matches(secret, hash string) (bool, error) {
	if secret == "" {
		return false, errEmptySecret
	}
	if hash == "" {
		return false, errors.New("hash cannot be empty")
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), digest(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to compare secret: %w", err)
	}
}

func digest(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return []byte(hex.EncodeToString(sum[:]))
}
