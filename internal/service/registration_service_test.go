package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphauth/internal/config"
	"graphauth/internal/hashing"
	"graphauth/internal/pattern"
	"graphauth/internal/repository/file"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		ToleranceRadius: config.DefaultToleranceRadius,
		MinPoints:       config.DefaultMinPoints,
		MaxPoints:       config.DefaultMaxPoints,
		MaxAttempts:     config.DefaultMaxAttempts,
	}
}

func newTestRepo(t *testing.T) *file.FileCredentialRepository {
	t.Helper()
	repo, err := file.NewCredentialRepository(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	return repo
}

func newRegistrationService(t *testing.T) (*RegistrationService, *file.FileCredentialRepository) {
	t.Helper()
	repo := newTestRepo(t)
	return NewRegistrationService(repo, hashing.NewHasher(), testAuthConfig()), repo
}

var validPoints = pattern.Sequence{{X: 10, Y: 10}, {X: 50, Y: 50}, {X: 90, Y: 10}}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a persisted credential", func(t *testing.T) {
		svc, repo := newRegistrationService(t)

		require.NoError(t, svc.Register(ctx, "alice", validPoints, "assets/photo.jpg"))

		cred, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, validPoints, cred.OriginalPoints)
		assert.Equal(t, "assets/photo.jpg", cred.ImagePath)
		assert.NotEmpty(t, cred.HashedPoints)
		assert.NotEmpty(t, cred.Salt)
		assert.False(t, cred.CreatedAt.IsZero())
		assert.Nil(t, cred.LastLogin)

		// The stored digest must verify against the stored points and salt.
		ok, err := hashing.NewHasher().VerifyPattern(cred.OriginalPoints, cred.Salt, cred.HashedPoints)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty username", func(t *testing.T) {
		svc, _ := newRegistrationService(t)
		assert.ErrorIs(t, svc.Register(ctx, "", validPoints, "img.jpg"), ErrEmptyUsername)
	})

	t.Run("duplicate username leaves first credential untouched", func(t *testing.T) {
		svc, repo := newRegistrationService(t)
		require.NoError(t, svc.Register(ctx, "alice", validPoints, "first.jpg"))

		err := svc.Register(ctx, "alice", pattern.Sequence{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}, "second.jpg")
		assert.ErrorIs(t, err, ErrDuplicateUsername)

		cred, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "first.jpg", cred.ImagePath)
		assert.Equal(t, validPoints, cred.OriginalPoints)
	})

	t.Run("two points rejected, three accepted", func(t *testing.T) {
		svc, _ := newRegistrationService(t)
		err := svc.Register(ctx, "bob", pattern.Sequence{{X: 1, Y: 1}, {X: 2, Y: 2}}, "img.jpg")
		assert.ErrorIs(t, err, ErrInsufficientPoints)
		assert.NoError(t, svc.Register(ctx, "bob", pattern.Sequence{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}, "img.jpg"))
	})

	t.Run("too many points rejected", func(t *testing.T) {
		svc, _ := newRegistrationService(t)
		six := pattern.Sequence{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}, {X: 5, Y: 5}, {X: 6, Y: 6}}
		assert.ErrorIs(t, svc.Register(ctx, "carol", six, "img.jpg"), ErrTooManyPoints)
	})

	t.Run("missing image path", func(t *testing.T) {
		svc, _ := newRegistrationService(t)
		assert.ErrorIs(t, svc.Register(ctx, "dave", validPoints, ""), ErrMissingImage)
	})

	t.Run("fresh salt per credential", func(t *testing.T) {
		svc, repo := newRegistrationService(t)
		require.NoError(t, svc.Register(ctx, "alice", validPoints, "img.jpg"))
		require.NoError(t, svc.Register(ctx, "bob", validPoints, "img.jpg"))

		a, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		b, err := repo.Get(ctx, "bob")
		require.NoError(t, err)
		assert.NotEqual(t, a.Salt, b.Salt)
		assert.NotEqual(t, a.HashedPoints, b.HashedPoints)
	})
}

func TestResetPattern(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces pattern, digest and salt wholesale", func(t *testing.T) {
		svc, repo := newRegistrationService(t)
		require.NoError(t, svc.Register(ctx, "alice", validPoints, "img.jpg"))

		before, err := repo.Get(ctx, "alice")
		require.NoError(t, err)

		replacement := pattern.Sequence{{X: 5, Y: 5}, {X: 15, Y: 15}, {X: 25, Y: 25}, {X: 35, Y: 35}}
		require.NoError(t, svc.ResetPattern(ctx, "alice", replacement, ""))

		after, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, replacement, after.OriginalPoints)
		assert.NotEqual(t, before.Salt, after.Salt)
		assert.NotEqual(t, before.HashedPoints, after.HashedPoints)
		assert.Equal(t, "img.jpg", after.ImagePath, "empty image path keeps the current image")
		assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
	})

	t.Run("new image path replaces the reference image", func(t *testing.T) {
		svc, repo := newRegistrationService(t)
		require.NoError(t, svc.Register(ctx, "alice", validPoints, "old.jpg"))

		require.NoError(t, svc.ResetPattern(ctx, "alice", validPoints, "new.jpg"))

		cred, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "new.jpg", cred.ImagePath)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newRegistrationService(t)
		assert.ErrorIs(t, svc.ResetPattern(ctx, "ghost", validPoints, ""), ErrUnknownUser)
	})

	t.Run("point bounds still enforced", func(t *testing.T) {
		svc, _ := newRegistrationService(t)
		require.NoError(t, svc.Register(ctx, "alice", validPoints, "img.jpg"))
		err := svc.ResetPattern(ctx, "alice", pattern.Sequence{{X: 1, Y: 1}}, "")
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})
}
