// Package command is the typed boundary between the presentation layer and
// the core services: the UI builds one of the command values below and
// hands it to the Dispatcher, which returns a discriminated Result the UI
// renders as a message. No UI concern leaks past this package.
package command

import "graphauth/internal/pattern"

// Command is one user-initiated operation against the core.
type Command interface {
	commandName() string
}

// RegisterCommand creates a credential for a new username.
type RegisterCommand struct {
	Username  string
	Points    pattern.Sequence
	ImagePath string
}

func (RegisterCommand) commandName() string { return "register" }

// BeginLoginCommand starts (or restarts) a login flow for a username and
// yields the reference image the UI must present.
type BeginLoginCommand struct {
	Username string
}

func (BeginLoginCommand) commandName() string { return "begin_login" }

// LoginAttemptCommand submits a candidate pattern for the active login flow.
type LoginAttemptCommand struct {
	Points pattern.Sequence
}

func (LoginAttemptCommand) commandName() string { return "login_attempt" }

// ResetPatternCommand replaces an existing user's pattern wholesale.
type ResetPatternCommand struct {
	Username  string
	Points    pattern.Sequence
	ImagePath string
}

func (ResetPatternCommand) commandName() string { return "reset_pattern" }

// Result is what the presentation layer renders after a dispatch. Err is
// set for rejected or failed commands; Message is always suitable to show
// the user. RemainingAttempts is meaningful only after a missed login
// attempt, and ImagePath only after a successful BeginLoginCommand.
type Result struct {
	OK                bool
	Message           string
	ImagePath         string
	RemainingAttempts int
	Err               error
}
