package service

import (
	"context"
	"fmt"
	"time"

	"graphauth/internal/config"
	"graphauth/internal/pattern"
	"graphauth/internal/repository/file"
	"graphauth/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AttemptOutcome is the discriminated result of one pattern submission.
type AttemptOutcome int

const (
	OutcomeSuccess AttemptOutcome = iota
	OutcomeRetry
	OutcomeLockout
)

func (o AttemptOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetry:
		return "retry"
	case OutcomeLockout:
		return "lockout"
	default:
		return "unknown"
	}
}

// AttemptResult reports the outcome of a submission. RemainingAttempts is
// meaningful only for OutcomeRetry.
type AttemptResult struct {
	Outcome           AttemptOutcome
	RemainingAttempts int
}

// AuthenticationService verifies pattern attempts against stored
// credentials and enforces the per-session attempt limit.
//
// Verification compares the stored cleartext points under the tolerance
// radius; the salted digest on the record is not consulted. Lockout is
// purely attempt-count based and the counter lives on the session, so a
// caller that begins a fresh session restarts from zero.
type AuthenticationService struct {
	repo file.CredentialRepository
	cfg  config.AuthConfig

	defaultImagePath string
}

func NewAuthenticationService(repo file.CredentialRepository, cfg config.AuthConfig, defaultImagePath string) *AuthenticationService {
	return &AuthenticationService{
		repo:             repo,
		cfg:              cfg,
		defaultImagePath: defaultImagePath,
	}
}

// Begin starts a login flow for username and returns the session the caller
// will submit attempts against, with the user's reference image to present.
// An unknown username fails without consuming an attempt.
func (s *AuthenticationService) Begin(ctx context.Context, username string) (*Session, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}

	cred, err := s.repo.Get(ctx, username)
	if err != nil {
		util.Warn("Login attempt for unknown user", zap.String("username", username))
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}

	sess := &Session{
		ID:        uuid.New(),
		Username:  username,
		ImagePath: cred.ImagePath,
		state:     StateImagePresented,
	}

	util.Info("Login session started",
		zap.String("session_id", sess.ID.String()),
		zap.String("username", username))

	return sess, nil
}

// Submit verifies one candidate pattern for the session's username. A
// non-empty candidate always consumes an attempt; on success the user's
// last-login timestamp is persisted and the session closes, on the final
// mismatch the session closes locked out, otherwise the session stays open
// for another attempt.
func (s *AuthenticationService) Submit(ctx context.Context, sess *Session, candidate pattern.Sequence) (*AttemptResult, error) {
	if sess == nil || !sess.Active() {
		return nil, ErrSessionClosed
	}
	if len(candidate) == 0 {
		return nil, ErrEmptyPattern
	}

	cred, err := s.repo.Get(ctx, sess.Username)
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, sess.Username)
	}

	sess.attemptCount++

	if pattern.Matches(cred.OriginalPoints, candidate, s.cfg.ToleranceRadius) {
		now := time.Now().UTC()
		cred.LastLogin = &now
		if err := s.repo.Put(ctx, sess.Username, cred); err != nil {
			// The user did authenticate; losing the timestamp is not a
			// reason to fail the login.
			util.Error("Authenticated but failed to record last login",
				zap.String("session_id", sess.ID.String()),
				zap.String("username", sess.Username),
				zap.Error(err))
		}

		sess.close()
		util.Info("Authentication succeeded",
			zap.String("session_id", sess.ID.String()),
			zap.String("username", sess.Username),
			zap.Int("attempts", sess.attemptCount))

		return &AttemptResult{Outcome: OutcomeSuccess}, nil
	}

	if sess.attemptCount >= s.cfg.MaxAttempts {
		sess.close()
		util.Warn("Authentication locked out",
			zap.String("session_id", sess.ID.String()),
			zap.String("username", sess.Username),
			zap.Int("attempts", sess.attemptCount))

		return &AttemptResult{Outcome: OutcomeLockout}, nil
	}

	remaining := s.cfg.MaxAttempts - sess.attemptCount
	util.Warn("Authentication attempt failed",
		zap.String("session_id", sess.ID.String()),
		zap.String("username", sess.Username),
		zap.Int("remaining_attempts", remaining))

	return &AttemptResult{Outcome: OutcomeRetry, RemainingAttempts: remaining}, nil
}

// ImagePath returns the reference image registered for username, or the
// configured default image when the user is unknown.
func (s *AuthenticationService) ImagePath(ctx context.Context, username string) string {
	cred, err := s.repo.Get(ctx, username)
	if err != nil {
		return s.defaultImagePath
	}
	return cred.ImagePath
}
