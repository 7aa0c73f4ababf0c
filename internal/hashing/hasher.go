package hashing

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"graphauth/internal/pattern"
)

var ErrInvalidDigest = errors.New("invalid digest format")

const saltLength = 16

// Hasher produces salted digests of pattern sequences. The digest is a hex
// SHA-256 over the JSON encoding of the points concatenated with the salt,
// which is the format written to the credential file.
type Hasher struct {
	saltLength int
}

// HashResult carries a computed digest together with the salt it was
// computed under.
type HashResult struct {
	Hash      string `json:"hash"`
	Salt      string `json:"salt"`
	Algorithm string `json:"algorithm"`
}

func NewHasher() *Hasher {
	return &Hasher{
		saltLength: saltLength,
	}
}

// GenerateSalt returns a fresh random salt, base64-encoded. Salts are
// generated once per credential and never reused.
func (h *Hasher) GenerateSalt() (string, error) {
	raw := make([]byte, h.saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// HashPattern digests the sequence under a freshly generated salt.
func (h *Hasher) HashPattern(points pattern.Sequence) (*HashResult, error) {
	salt, err := h.GenerateSalt()
	if err != nil {
		return nil, err
	}
	return h.HashPatternWithSalt(points, salt)
}

// HashPatternWithSalt digests the sequence under an existing salt.
func (h *Hasher) HashPatternWithSalt(points pattern.Sequence, salt string) (*HashResult, error) {
	encoded, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("failed to encode points: %w", err)
	}

	digest := sha256.Sum256(append(encoded, salt...))

	return &HashResult{
		Hash:      hex.EncodeToString(digest[:]),
		Salt:      salt,
		Algorithm: "sha256-v1",
	}, nil
}

// VerifyPattern recomputes the digest for points under the stored salt and
// compares it against the stored digest in constant time.
//
// Note: login does not call this. Verification compares the cleartext
// points stored alongside the digest, so the digest is defense-in-depth
// only. Hash-only verification is the intended end state but would require
// an exact-reproduction flow with no tolerance radius.
func (h *Hasher) VerifyPattern(points pattern.Sequence, salt, expected string) (bool, error) {
	if _, err := hex.DecodeString(expected); err != nil {
		return false, ErrInvalidDigest
	}

	computed, err := h.HashPatternWithSalt(points, salt)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(computed.Hash), []byte(expected)) == 1, nil
}
