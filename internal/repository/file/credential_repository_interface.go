package file

import (
	"context"
	"errors"
	"fmt"

	"graphauth/internal/models"
)

// ErrCredentialNotFound indicates the username has no registered credential.
var ErrCredentialNotFound = errors.New("credential not found")

// StorageError reports a failed read or write of the backing credential
// file. The in-memory store is left unchanged when one is returned.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("credential store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// CredentialRepository defines the persistence contract for pattern
// credentials. Every mutation is persisted immediately: there is no write
// batching, and the file is rewritten whole on each Put.
type CredentialRepository interface {
	Exists(ctx context.Context, username string) bool
	Get(ctx context.Context, username string) (*models.Credential, error)
	Put(ctx context.Context, username string, cred *models.Credential) error
	Count() int
	HealthCheck(ctx context.Context) error
}
