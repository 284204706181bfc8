// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/ipo-auth/internal/model"
)

// MaxLength is the longest password, in bytes, bcrypt accepts.
const MaxLength = 72

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt implements model.PasswordHasher. Each hash embeds its own random salt
// and cost, so hashes made with a different cost still verify.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher with the given cost. Costs outside bcrypt's
// accepted range fall back to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns the bcrypt hash of plaintext.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A malformed hash never matches.
func (b *Bcrypt) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Cost returns the configured work factor.
func (b *Bcrypt) Cost() int {
	return b.cost
}
