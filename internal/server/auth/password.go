package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts, in bytes.
const MaxPasswordBytes = 72

// Hasher hashes and verifies principal passwords with bcrypt. The salt is
// generated per hash and stored inside the hash string.
type Hasher struct {
	cost      int
	dummyHash []byte
}

// NewHasher returns a Hasher using cost; values outside bcrypt's accepted
// range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	// Compared against when the email is unknown, so a failed sign-in costs
	// the same whether or not the principal exists.
	dummy, err := bcrypt.GenerateFromPassword([]byte("coursehub-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("error generating dummy hash: %w", err)
	}

	return &Hasher{cost: cost, dummyHash: dummy}, nil
}

// Cost is the bcrypt cost factor new hashes are generated with.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt hash of plaintext. Passwords longer than
// MaxPasswordBytes yield common.ErrPasswordTooLong.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", common.ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A mismatch is not an error,
// and neither is a plaintext too long to ever have been hashed; a hash that
// bcrypt cannot parse yields common.ErrInvalidHashFormat.
func (h *Hasher) Verify(plaintext, hash string) (bool, error) {
	if len(plaintext) > MaxPasswordBytes {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return false, common.ErrInvalidHashFormat
		}
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, common.ErrInvalidHashFormat
	}
}

// VerifyDummy burns one comparison against a fixed hash and always reports
// false.
func (h *Hasher) VerifyDummy(plaintext string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(plaintext))
	return false
}
