package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"graphauth/internal/models"
	"graphauth/internal/util"

	"go.uber.org/zap"
)

// FileCredentialRepository keeps the full username → credential mapping in
// memory and mirrors it to a single JSON file. The file is read once at
// construction and rewritten whole after every mutation; it is the sole
// source of truth across restarts. Last writer wins if multiple processes
// share the file.
type FileCredentialRepository struct {
	path  string
	users map[string]*models.Credential
}

// NewCredentialRepository loads the credential file at path. A missing file
// yields an empty store and the containing directory is created; a corrupt
// file is logged and degraded to an empty store rather than failing startup.
func NewCredentialRepository(path string) (*FileCredentialRepository, error) {
	r := &FileCredentialRepository{
		path:  path,
		users: make(map[string]*models.Credential),
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			util.Error("Failed to read credential file, starting with empty store",
				zap.String("path", path),
				zap.Error(err))
		}
		return r, nil
	}

	var store models.CredentialFile
	if err := json.Unmarshal(data, &store); err != nil {
		util.Error("Credential file is corrupt, starting with empty store",
			zap.String("path", path),
			zap.Error(err))
		return r, nil
	}
	if store.Users != nil {
		r.users = store.Users
	}

	util.Info("Credential store loaded",
		zap.String("path", path),
		zap.Int("credentials", len(r.users)))

	return r, nil
}

// Exists reports whether the username has a registered credential.
func (r *FileCredentialRepository) Exists(ctx context.Context, username string) bool {
	_, ok := r.users[username]
	return ok
}

// Get returns a copy of the stored credential for username.
func (r *FileCredentialRepository) Get(ctx context.Context, username string) (*models.Credential, error) {
	cred, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCredentialNotFound, username)
	}
	return cred.Clone(), nil
}

// Put upserts the whole credential record and persists the store. On a
// persist failure the previous in-memory state is restored, so the store
// never diverges from the file.
func (r *FileCredentialRepository) Put(ctx context.Context, username string, cred *models.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prev, had := r.users[username]
	r.users[username] = cred.Clone()

	if err := r.save(); err != nil {
		if had {
			r.users[username] = prev
		} else {
			delete(r.users, username)
		}
		util.Error("Failed to persist credential store",
			zap.String("username", username),
			zap.Error(err))
		return err
	}

	return nil
}

// Count returns the number of registered credentials.
func (r *FileCredentialRepository) Count() int {
	return len(r.users)
}

// HealthCheck verifies the backing directory is still reachable.
func (r *FileCredentialRepository) HealthCheck(ctx context.Context) error {
	if _, err := os.Stat(filepath.Dir(r.path)); err != nil {
		return &StorageError{Op: "stat", Path: filepath.Dir(r.path), Err: err}
	}
	return nil
}

// save rewrites the credential file in one shot: the store is serialized to
// a temp file in the same directory and renamed into place, so readers
// never observe a partial write.
func (r *FileCredentialRepository) save() error {
	data, err := json.MarshalIndent(&models.CredentialFile{Users: r.users}, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Path: r.path, Err: err}
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return &StorageError{Op: "create", Path: r.path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &StorageError{Op: "write", Path: r.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &StorageError{Op: "close", Path: r.path, Err: err}
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		os.Remove(tmp.Name())
		return &StorageError{Op: "chmod", Path: r.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return &StorageError{Op: "rename", Path: r.path, Err: err}
	}

	return nil
}
