package service

import "github.com/google/uuid"

// SessionState tracks where a login session is in the attempt flow.
type SessionState int

const (
	// StateImagePresented means the user's reference image has been handed
	// to the caller and pattern attempts are being accepted.
	StateImagePresented SessionState = iota
	// StateClosed means the session is finished (success or lockout) and
	// accepts no further attempts. A new login flow starts from Begin.
	StateClosed
)

// Session is the per-login attempt state for a single username. It is
// created by AuthenticationService.Begin, owned by the caller, and passed
// back into Submit; there is no process-wide session singleton. Switching
// usernames means beginning a new session, which starts the attempt counter
// from zero.
type Session struct {
	// ID correlates log lines for one login flow.
	ID        uuid.UUID
	Username  string
	ImagePath string

	state        SessionState
	attemptCount int
}

// AttemptCount returns the number of attempts consumed so far.
func (s *Session) AttemptCount() int {
	return s.attemptCount
}

// Active reports whether the session still accepts attempts.
func (s *Session) Active() bool {
	return s.state == StateImagePresented
}

func (s *Session) close() {
	s.state = StateClosed
}
