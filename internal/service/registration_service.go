package service

import (
	"context"
	"fmt"
	"time"

	"graphauth/internal/config"
	"graphauth/internal/hashing"
	"graphauth/internal/models"
	"graphauth/internal/pattern"
	"graphauth/internal/repository/file"
	"graphauth/internal/util"

	"go.uber.org/zap"
)

// RegistrationService creates and replaces pattern credentials.
type RegistrationService struct {
	repo   file.CredentialRepository
	hasher *hashing.Hasher
	cfg    config.AuthConfig
}

func NewRegistrationService(repo file.CredentialRepository, hasher *hashing.Hasher, cfg config.AuthConfig) *RegistrationService {
	return &RegistrationService{
		repo:   repo,
		hasher: hasher,
		cfg:    cfg,
	}
}

// Register creates a credential for a new username. Preconditions are
// checked in order and short-circuit: non-empty username, username not
// taken, point count within bounds, non-empty image path. On success the
// record is persisted immediately with a fresh salt and digest.
func (s *RegistrationService) Register(ctx context.Context, username string, points pattern.Sequence, imagePath string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if s.repo.Exists(ctx, username) {
		util.Warn("Registration rejected, username taken", zap.String("username", username))
		return ErrDuplicateUsername
	}
	if err := s.validatePointCount(points); err != nil {
		return err
	}
	if imagePath == "" {
		return ErrMissingImage
	}

	digest, err := s.hasher.HashPattern(points)
	if err != nil {
		return fmt.Errorf("failed to hash pattern: %w", err)
	}

	cred := &models.Credential{
		HashedPoints:   digest.Hash,
		Salt:           digest.Salt,
		ImagePath:      imagePath,
		OriginalPoints: points.Clone(),
		CreatedAt:      time.Now().UTC(),
		LastLogin:      nil,
	}

	if err := s.repo.Put(ctx, username, cred); err != nil {
		return err
	}

	util.Info("User registered",
		zap.String("username", username),
		zap.Int("points", len(points)),
		zap.String("image_path", imagePath))

	return nil
}

// ResetPattern replaces an existing user's pattern wholesale: new points,
// new salt, new digest. Fields are never patched individually. An empty
// imagePath keeps the current reference image.
func (s *RegistrationService) ResetPattern(ctx context.Context, username string, points pattern.Sequence, imagePath string) error {
	if username == "" {
		return ErrEmptyUsername
	}

	cred, err := s.repo.Get(ctx, username)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}

	if err := s.validatePointCount(points); err != nil {
		return err
	}

	digest, err := s.hasher.HashPattern(points)
	if err != nil {
		return fmt.Errorf("failed to hash pattern: %w", err)
	}

	cred.OriginalPoints = points.Clone()
	cred.HashedPoints = digest.Hash
	cred.Salt = digest.Salt
	if imagePath != "" {
		cred.ImagePath = imagePath
	}

	if err := s.repo.Put(ctx, username, cred); err != nil {
		return err
	}

	util.Info("User pattern reset",
		zap.String("username", username),
		zap.Int("points", len(points)))

	return nil
}

func (s *RegistrationService) validatePointCount(points pattern.Sequence) error {
	if len(points) < s.cfg.MinPoints {
		return fmt.Errorf("%w (minimum %d)", ErrInsufficientPoints, s.cfg.MinPoints)
	}
	if len(points) > s.cfg.MaxPoints {
		return fmt.Errorf("%w (maximum %d)", ErrTooManyPoints, s.cfg.MaxPoints)
	}
	return nil
}
