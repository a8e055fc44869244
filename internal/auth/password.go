package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost targets 50-100ms per hash on commodity hardware.
const DefaultBcryptCost = 16

// PasswordHasher peppers plaintext passwords with a server-wide secret before
// running them through bcrypt. The pepper is applied identically on the write
// and verify paths, so hashes are not portable across deployments with
// different pepper values.
type PasswordHasher struct {
	pepper []byte
	cost   int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewPasswordHasher creates a hasher with the given pepper secret and bcrypt
// cost. Cost values outside bcrypt's supported range fall back to the default.
func NewPasswordHasher(pepper string, cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{
		pepper: []byte(pepper),
		cost:   cost,
	}
}

// pepperize derives the peppered form of a plaintext password. HMAC-SHA256
// output is base64 encoded to stay well under bcrypt's 72-byte input limit.
func (h *PasswordHasher) pepperize(plaintext string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(plaintext))
	sum := mac.Sum(nil)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum)
	return out
}

// Hash returns the bcrypt hash of the peppered plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(h.pepperize(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch is not
// an error; an error means the stored hash is malformed.
func (h *PasswordHasher) Verify(plaintext, storedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), h.pepperize(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// DummyVerify burns the same work as a real verification against a throwaway
// hash. Login calls this when the email is unknown so the response latency
// does not reveal whether the account exists.
func (h *PasswordHasher) DummyVerify() {
	h.dummyOnce.Do(func() {
		h.dummyHash, _ = bcrypt.GenerateFromPassword(h.pepperize("dummy-timing-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, h.pepperize("not-the-dummy-password"))
}
