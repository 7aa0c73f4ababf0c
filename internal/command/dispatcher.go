package command

import (
	"context"
	"errors"
	"fmt"

	"graphauth/internal/config"
	"graphauth/internal/pattern"
	"graphauth/internal/repository/file"
	"graphauth/internal/service"
	"graphauth/internal/util"

	"go.uber.org/zap"
)

// ErrNoActiveSession is returned for a login attempt before any login flow
// has been started.
var ErrNoActiveSession = errors.New("no active login session")

// Dispatcher routes typed commands into the core services. It owns the
// current login session on behalf of the presentation layer, so the UI
// never touches session state directly. Dispatching a BeginLoginCommand for
// a different username abandons the current flow and starts a fresh one.
type Dispatcher struct {
	registration   *service.RegistrationService
	authentication *service.AuthenticationService
	cfg            config.AuthConfig

	session *service.Session
}

func NewDispatcher(registration *service.RegistrationService, authentication *service.AuthenticationService, cfg config.AuthConfig) *Dispatcher {
	return &Dispatcher{
		registration:   registration,
		authentication: authentication,
		cfg:            cfg,
	}
}

// Dispatch executes one command and returns the result to render.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) Result {
	switch c := cmd.(type) {
	case RegisterCommand:
		return d.register(ctx, c)
	case BeginLoginCommand:
		return d.beginLogin(ctx, c)
	case LoginAttemptCommand:
		return d.loginAttempt(ctx, c)
	case ResetPatternCommand:
		return d.resetPattern(ctx, c)
	default:
		err := fmt.Errorf("unknown command type %T", cmd)
		return Result{Err: err, Message: err.Error()}
	}
}

// ActiveSession exposes the current login flow, if any. Used by the
// presentation layer to decide whether an attempt can be offered.
func (d *Dispatcher) ActiveSession() *service.Session {
	if d.session != nil && d.session.Active() {
		return d.session
	}
	return nil
}

func (d *Dispatcher) register(ctx context.Context, c RegisterCommand) Result {
	username := util.SanitizeUsername(c.Username)

	if res, ok := d.checkCapturedPoints(c.Points); !ok {
		return res
	}

	if err := d.registration.Register(ctx, username, c.Points, c.ImagePath); err != nil {
		return d.failure(err)
	}

	return Result{OK: true, Message: "User registered successfully!"}
}

func (d *Dispatcher) beginLogin(ctx context.Context, c BeginLoginCommand) Result {
	username := util.SanitizeUsername(c.Username)

	// Same username mid-flow keeps the session and its attempt counter.
	if cur := d.ActiveSession(); cur != nil && cur.Username == username {
		return Result{
			OK:        true,
			Message:   "Recreate your authentication pattern.",
			ImagePath: cur.ImagePath,
		}
	}

	sess, err := d.authentication.Begin(ctx, username)
	if err != nil {
		return d.failure(err)
	}
	d.session = sess

	return Result{
		OK:        true,
		Message:   "Please recreate your authentication pattern.",
		ImagePath: sess.ImagePath,
	}
}

func (d *Dispatcher) loginAttempt(ctx context.Context, c LoginAttemptCommand) Result {
	sess := d.ActiveSession()
	if sess == nil {
		return Result{Err: ErrNoActiveSession, Message: "Please begin a login first."}
	}

	if res, ok := d.checkCapturedPoints(c.Points); !ok {
		return res
	}

	result, err := d.authentication.Submit(ctx, sess, c.Points)
	if err != nil {
		return d.failure(err)
	}

	switch result.Outcome {
	case service.OutcomeSuccess:
		d.session = nil
		return Result{OK: true, Message: "Authentication successful!"}
	case service.OutcomeLockout:
		d.session = nil
		return Result{
			Err:     errors.New("maximum attempts reached"),
			Message: fmt.Sprintf("Authentication failed. Maximum attempts (%d) reached.", d.cfg.MaxAttempts),
		}
	default:
		return Result{
			Err:               errors.New("pattern did not match"),
			Message:           fmt.Sprintf("Authentication failed. %d attempts remaining.", result.RemainingAttempts),
			RemainingAttempts: result.RemainingAttempts,
		}
	}
}

func (d *Dispatcher) resetPattern(ctx context.Context, c ResetPatternCommand) Result {
	username := util.SanitizeUsername(c.Username)

	if res, ok := d.checkCapturedPoints(c.Points); !ok {
		return res
	}

	if err := d.registration.ResetPattern(ctx, username, c.Points, c.ImagePath); err != nil {
		return d.failure(err)
	}

	return Result{OK: true, Message: "Pattern reset successfully!"}
}

// checkCapturedPoints enforces the capture-side point cap: the input layer
// is responsible for never handing the core more than MaxPoints.
func (d *Dispatcher) checkCapturedPoints(points pattern.Sequence) (Result, bool) {
	if len(points) > d.cfg.MaxPoints {
		return Result{
			Err:     service.ErrTooManyPoints,
			Message: fmt.Sprintf("Maximum of %d points reached.", d.cfg.MaxPoints),
		}, false
	}
	return Result{}, true
}

// failure maps a service error to a user-facing message.
func (d *Dispatcher) failure(err error) Result {
	res := Result{Err: err}

	var storageErr *file.StorageError
	switch {
	case errors.Is(err, service.ErrEmptyUsername):
		res.Message = "Please enter a username."
	case errors.Is(err, service.ErrDuplicateUsername):
		res.Message = "Username already exists. Please choose another."
	case errors.Is(err, service.ErrInsufficientPoints):
		res.Message = fmt.Sprintf("Please select at least %d points for security.", d.cfg.MinPoints)
	case errors.Is(err, service.ErrTooManyPoints):
		res.Message = fmt.Sprintf("Maximum of %d points reached.", d.cfg.MaxPoints)
	case errors.Is(err, service.ErrMissingImage):
		res.Message = "Please select an image."
	case errors.Is(err, service.ErrUnknownUser):
		res.Message = "User does not exist."
	case errors.Is(err, service.ErrEmptyPattern):
		res.Message = "Please select your authentication points."
	case errors.Is(err, service.ErrSessionClosed):
		res.Message = "Login session expired. Please begin again."
	case errors.As(err, &storageErr):
		util.Error("Command failed on storage", zap.Error(err))
		res.Message = "Failed to save user data."
	default:
		res.Message = err.Error()
	}

	return res
}
