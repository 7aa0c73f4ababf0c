package models

import (
	"time"

	"graphauth/internal/pattern"
)

// Credential is one registered user's pattern credential as persisted in
// the credential file. The username is the map key in CredentialFile, not a
// field of the record.
//
// OriginalPoints keeps the registered pattern in cleartext next to its
// salted digest; login verification compares the cleartext points under the
// tolerance radius, so HashedPoints is defense-in-depth only.
type Credential struct {
	HashedPoints   string           `json:"hashed_points"`
	Salt           string           `json:"salt"`
	ImagePath      string           `json:"image_path"`
	OriginalPoints pattern.Sequence `json:"original_points"`
	CreatedAt      time.Time        `json:"created_at"`
	LastLogin      *time.Time       `json:"last_login"`
}

// Clone returns an independent copy of the credential.
func (c *Credential) Clone() *Credential {
	if c == nil {
		return nil
	}
	out := *c
	out.OriginalPoints = c.OriginalPoints.Clone()
	if c.LastLogin != nil {
		last := *c.LastLogin
		out.LastLogin = &last
	}
	return &out
}

// CredentialFile is the on-disk layout of the credential store: a single
// JSON object keyed by username.
type CredentialFile struct {
	Users map[string]*Credential `json:"users"`
}

// NewCredentialFile returns an empty store layout.
func NewCredentialFile() *CredentialFile {
	return &CredentialFile{
		Users: make(map[string]*Credential),
	}
}
