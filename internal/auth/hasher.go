package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the fixed work factor for password hashing. Raising it slows
// brute-force attempts against stolen hashes at the price of slower logins.
const bcryptCost = bcrypt.DefaultCost

const saltBytes = 16

// CredentialHasher is the credential subsystem consumed by the Service.
type CredentialHasher interface {
	NewCredentialPair(password string) (CredentialPair, error)
	VerifyPassword(password, salt, hash string) bool
}

// Hasher derives and verifies salted bcrypt password hashes. The per-user
// salt is concatenated onto the plaintext before hashing, so identical
// passwords on different accounts never share a hash.
type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: bcryptCost}
}

// GenerateSalt returns a fresh random salt, independent across calls.
func (h *Hasher) GenerateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPassword computes the one-way salted hash of a plaintext password.
func (h *Hasher) HashPassword(password, salt string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(saltedInput(password, salt), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext, mixed with the stored salt,
// matches the stored hash. A mismatch is a false return, never an error.
func (h *Hasher) VerifyPassword(password, salt, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), saltedInput(password, salt)) == nil
}

// saltedInput compresses password+salt to a fixed-width digest before bcrypt.
// bcrypt only reads the first 72 bytes of its input; without this step a long
// password plus the salt would exceed that limit and fail to hash at all.
func saltedInput(password, salt string) []byte {
	digest := sha256.Sum256([]byte(password + salt))
	return []byte(hex.EncodeToString(digest[:]))
}

// NewCredentialPair generates a salt and hashes the password with it, for
// registration-time use.
func (h *Hasher) NewCredentialPair(password string) (CredentialPair, error) {
	salt, err := h.GenerateSalt()
	if err != nil {
		return CredentialPair{}, err
	}
	hash, err := h.HashPassword(password, salt)
	if err != nil {
		return CredentialPair{}, err
	}
	return CredentialPair{Salt: salt, Hash: hash}, nil
}
