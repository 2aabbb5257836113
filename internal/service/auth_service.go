package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"skillswap-cli/internal/api"
	"skillswap-cli/internal/domain/user"
	interfaces "skillswap-cli/internal/interfaces/api"
	"skillswap-cli/internal/querycache"
	"skillswap-cli/pkg/logger"
	"skillswap-cli/pkg/validator"
)

// Cache key namespaces owned by the auth service.
const (
	authCheckKey   = "auth:check"
	authProfileKey = "auth:profile"
)

// ErrRoleMismatch is returned when the role declared at sign-in does not
// match the role the server reports for the account. The server is the
// source of truth; the session is discarded.
var ErrRoleMismatch = errors.New("you do not have the selected role")

// ErrNotAuthenticated is returned when no valid session exists.
var ErrNotAuthenticated = errors.New("not signed in")

// SessionResetter drops locally held session credentials.
type SessionResetter interface {
	ClearSession() error
}

// AuthService owns the session lifecycle and the cached identity. It is the
// only component allowed to clear cached identity; an AuthError surfacing
// from a background refresh is reported, never acted on implicitly.
type AuthService struct {
	api      interfaces.AuthAPI
	cache    *querycache.Cache
	sessions SessionResetter

	identity *user.Identity
}

func NewAuthService(apiClient interfaces.AuthAPI, cache *querycache.Cache, sessions SessionResetter) *AuthService {
	return &AuthService{
		api:      apiClient,
		cache:    cache,
		sessions: sessions,
	}
}

// Register creates an account. Field problems, local or server-side, come
// back as an api.ValidationError so forms render them inline.
func (s *AuthService) Register(ctx context.Context, req interfaces.RegisterRequest) (*user.User, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, &api.ValidationError{
			StatusCode: http.StatusBadRequest,
			Fields:     validator.FieldMap(err),
		}
	}

	u, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Info("Registered account for %s", req.Email)
	return u, nil
}

// Login authenticates and installs the session identity. declaredRole is the
// role the user picked on the sign-in form; a mismatch against the
// server-returned role rejects the login and discards the session.
func (s *AuthService) Login(ctx context.Context, email, password, declaredRole string) (*user.Identity, error) {
	req := interfaces.LoginRequest{Email: email, Password: password}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, &api.ValidationError{
			StatusCode: http.StatusBadRequest,
			Fields:     validator.FieldMap(err),
		}
	}

	u, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	if declaredRole != "" && u.Role != declaredRole {
		adminOverride := declaredRole == user.RoleAdmin && user.IsAdministrator(u)
		if !adminOverride {
			logger.Warn("Role mismatch at login for %s: declared %q, server says %q", email, declaredRole, u.Role)
			s.discardSession(ctx)
			return nil, ErrRoleMismatch
		}
	}

	s.identity = user.NewIdentity(u)
	s.cache.Invalidate("auth:*")
	logger.Info("Signed in as %s (administrator=%t)", u.Email, s.identity.Administrator)
	return s.identity, nil
}

// Logout ends the server session and clears every trace of cached identity.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	if err != nil && !api.IsAuth(err) {
		return fmt.Errorf("logout failed: %w", err)
	}

	s.identity = nil
	s.cache.Clear()
	if s.sessions != nil {
		if cerr := s.sessions.ClearSession(); cerr != nil {
			logger.Warn("Failed to clear stored session: %v", cerr)
		}
	}
	logger.Info("Signed out")
	return nil
}

// Current returns the session identity, checking the stored session against
// the server when none is cached yet.
func (s *AuthService) Current(ctx context.Context) (*user.Identity, error) {
	if s.identity != nil {
		return s.identity, nil
	}

	check, err := querycache.Get(ctx, s.cache, authCheckKey, s.api.CheckAuth)
	if err != nil {
		return nil, err
	}
	if !check.Authenticated || check.User == nil {
		return nil, ErrNotAuthenticated
	}
	s.identity = user.NewIdentity(check.User)
	return s.identity, nil
}

// RequireAdministrator is the single authorization predicate for the admin
// surface.
func (s *AuthService) RequireAdministrator(ctx context.Context) (*user.Identity, error) {
	id, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !id.Administrator {
		return nil, errors.New("administrator access required")
	}
	return id, nil
}

// HandleAuthError clears cached identity when err reports an expired or
// missing session on a user-initiated action. A 403 means the session is
// valid but lacks permission, so the identity stays. Callers decide when to
// invoke it; background refreshes surface the error without calling this.
func (s *AuthService) HandleAuthError(err error) bool {
	var ae *api.AuthError
	if !errors.As(err, &ae) || ae.StatusCode != http.StatusUnauthorized {
		return false
	}
	s.identity = nil
	s.cache.Invalidate("auth:*")
	return true
}

func (s *AuthService) discardSession(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		logger.Debug("Best-effort logout failed: %v", err)
	}
	if s.sessions != nil {
		if err := s.sessions.ClearSession(); err != nil {
			logger.Warn("Failed to clear stored session: %v", err)
		}
	}
}
