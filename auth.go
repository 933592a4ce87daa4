package portage

import (
	"context"
	"time"

	"github.com/portage-market/portage-go/internal/domain"
	"github.com/portage-market/portage-go/internal/domain/account"
	"github.com/portage-market/portage-go/internal/repository/session"
	"github.com/portage-market/portage-go/internal/transport/rest"
)

// AuthService handles registration, login, and the stored session.
type AuthService struct {
	api  *rest.Client
	sess *session.Session
	obs  *observer
}

// FieldErrors maps a form field (json name) or field group to a
// human-readable validation message.
type FieldErrors = map[string]string

// ValidateStep validates one registration wizard step. An empty map means
// the step may advance.
func (s *AuthService) ValidateStep(form Registration, step int) (FieldErrors, error) {
	return account.ValidateStep(form, step)
}

// Register validates the whole form, creates the account, and logs the
// new user in. Validation failures come back as field errors alongside
// ErrValidation; nothing is sent in that case.
func (s *AuthService) Register(ctx context.Context, form Registration) (FieldErrors, error) {
	start := time.Now()
	errs, err := s.register(ctx, form)
	s.obs.observe("auth.register", start, err)
	return errs, err
}

func (s *AuthService) register(ctx context.Context, form Registration) (FieldErrors, error) {
	errs, err := account.ValidateAll(form)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return errs, domain.ErrValidation
	}
	if err := s.api.Register(ctx, form.Payload()); err != nil {
		return nil, err
	}
	return nil, s.login(ctx, form.Email, form.Password)
}

// Login exchanges credentials for a token and stores the session. A
// rejected login returns ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	start := time.Now()
	err := s.login(ctx, email, password)
	s.obs.observe("auth.login", start, err)
	return err
}

func (s *AuthService) login(ctx context.Context, email, password string) error {
	tok, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.sess.SetLogin(tok.AccessToken, string(tok.Role), tok.Email)
}

// Me fetches the authenticated profile.
func (s *AuthService) Me(ctx context.Context) (User, error) {
	start := time.Now()
	user, err := s.api.Me(ctx)
	s.obs.observe("auth.me", start, err)
	return user, err
}

// Logout clears the stored session. The language preference survives.
func (s *AuthService) Logout() error {
	return s.sess.Clear()
}

// Authenticated reports whether a login is stored.
func (s *AuthService) Authenticated() bool { return s.sess.Authenticated() }

// Role returns the stored role, or "" when logged out.
func (s *AuthService) Role() Role { return Role(s.sess.Role()) }

// Email returns the stored email, or "" when logged out.
func (s *AuthService) Email() string { return s.sess.Email() }
