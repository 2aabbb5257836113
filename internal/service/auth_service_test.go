package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap-cli/internal/api"
	"skillswap-cli/internal/api/mock"
	"skillswap-cli/internal/domain/user"
	"skillswap-cli/internal/querycache"
)

func newAuthFixture(t *testing.T, u *user.User) (*AuthService, *mock.Client) {
	t.Helper()
	m := mock.NewClient()
	m.LoginUser = u
	cache := querycache.New(querycache.Options{StaleAfter: time.Minute})
	t.Cleanup(cache.Close)
	return NewAuthService(m, cache, m), m
}

func member() *user.User {
	return &user.User{ID: 1, Email: "alice@example.com", FirstName: "Alice", Role: user.RoleUser}
}

func TestLoginInstallsIdentity(t *testing.T) {
	svc, _ := newAuthFixture(t, member())

	id, err := svc.Login(context.Background(), "alice@example.com", "secret", user.RoleUser)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if id.User.Email != "alice@example.com" {
		t.Errorf("Expected identity for alice, got %s", id.User.Email)
	}
	if id.Administrator {
		t.Error("Expected a plain member, not an administrator")
	}

	current, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if current != id {
		t.Error("Expected Current to reuse the installed identity")
	}
}

func TestLoginValidatesLocally(t *testing.T) {
	svc, m := newAuthFixture(t, member())

	_, err := svc.Login(context.Background(), "not-an-email", "", user.RoleUser)
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected a validation error, got %v", err)
	}
	if ve.Fields["email"] == "" || ve.Fields["password"] == "" {
		t.Errorf("Expected inline errors on email and password, got %v", ve.Fields)
	}
	if m.TotalCalls() != 0 {
		t.Errorf("Expected no API call for a local validation failure, got %d", m.TotalCalls())
	}
}

func TestLoginRoleMismatchDiscardsSession(t *testing.T) {
	svc, m := newAuthFixture(t, member())

	_, err := svc.Login(context.Background(), "alice@example.com", "secret", user.RoleAdmin)
	if !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("Expected ErrRoleMismatch, got %v", err)
	}
	if m.CallCount("Logout") != 1 {
		t.Errorf("Expected rejected session logged out, got %d logout calls", m.CallCount("Logout"))
	}
	if m.CallCount("ClearSession") != 1 {
		t.Errorf("Expected stored cookies cleared, got %d", m.CallCount("ClearSession"))
	}
	if _, err := svc.Current(context.Background()); err == nil {
		t.Error("Expected no identity after a rejected login")
	}
}

func TestLoginAdminFlagOverridesRoleField(t *testing.T) {
	admin := member()
	admin.IsStaff = true
	svc, _ := newAuthFixture(t, admin)

	id, err := svc.Login(context.Background(), "alice@example.com", "secret", user.RoleAdmin)
	if err != nil {
		t.Fatalf("Expected staff flag to satisfy the admin role, got %v", err)
	}
	if !id.Administrator {
		t.Error("Expected administrator identity")
	}
}

func TestCurrentChecksStoredSession(t *testing.T) {
	svc, m := newAuthFixture(t, member())

	id, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if id.User.ID != 1 {
		t.Errorf("Expected identity restored from the session check, got %+v", id.User)
	}
	if m.CallCount("CheckAuth") != 1 {
		t.Errorf("Expected 1 session check, got %d", m.CallCount("CheckAuth"))
	}

	// Follow-up calls reuse the installed identity.
	svc.Current(context.Background())
	if m.CallCount("CheckAuth") != 1 {
		t.Errorf("Expected the session check cached, got %d calls", m.CallCount("CheckAuth"))
	}
}

func TestCurrentWithoutSession(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)
	if _, err := svc.Current(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRequireAdministrator(t *testing.T) {
	svc, _ := newAuthFixture(t, member())
	svc.Login(context.Background(), "alice@example.com", "secret", user.RoleUser)

	if _, err := svc.RequireAdministrator(context.Background()); err == nil {
		t.Fatal("Expected a plain member to be denied")
	}

	admin := member()
	admin.Role = user.RoleAdmin
	svc, _ = newAuthFixture(t, admin)
	svc.Login(context.Background(), "alice@example.com", "secret", user.RoleAdmin)
	if _, err := svc.RequireAdministrator(context.Background()); err != nil {
		t.Errorf("Expected administrator allowed, got %v", err)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	svc, m := newAuthFixture(t, member())
	svc.Login(context.Background(), "alice@example.com", "secret", "")

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if m.CallCount("ClearSession") != 1 {
		t.Errorf("Expected stored session cleared, got %d", m.CallCount("ClearSession"))
	}

	m.LoginUser = nil
	if _, err := svc.Current(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected no identity after logout, got %v", err)
	}
}

func TestHandleAuthErrorOnlyActsOnAuthFailures(t *testing.T) {
	svc, m := newAuthFixture(t, member())
	svc.Login(context.Background(), "alice@example.com", "secret", "")

	if svc.HandleAuthError(&api.ServerError{StatusCode: 500}) {
		t.Error("Expected server errors left alone")
	}
	if _, err := svc.Current(context.Background()); err != nil {
		t.Errorf("Expected identity intact after a non-auth error, got %v", err)
	}

	if svc.HandleAuthError(&api.AuthError{StatusCode: 403}) {
		t.Error("Expected a permission denial left alone")
	}
	if _, err := svc.Current(context.Background()); err != nil {
		t.Errorf("Expected identity intact after a 403, got %v", err)
	}
	if m.CallCount("CheckAuth") != 0 {
		t.Errorf("Expected the in-memory identity to survive a 403, got %d session checks", m.CallCount("CheckAuth"))
	}

	if !svc.HandleAuthError(&api.AuthError{StatusCode: 401}) {
		t.Error("Expected an expired session handled")
	}
	if _, err := svc.Current(context.Background()); err != nil {
		t.Errorf("Current failed after a 401: %v", err)
	}
	if m.CallCount("CheckAuth") != 1 {
		t.Errorf("Expected a 401 to drop the identity and recheck the session, got %d checks", m.CallCount("CheckAuth"))
	}
}

func TestIsAdministratorCollapsesFlags(t *testing.T) {
	cases := []struct {
		name string
		u    user.User
		want bool
	}{
		{"plain member", user.User{Role: user.RoleUser}, false},
		{"role admin", user.User{Role: user.RoleAdmin}, true},
		{"is_admin flag", user.User{Role: user.RoleUser, IsAdmin: true}, true},
		{"is_staff flag", user.User{Role: user.RoleUser, IsStaff: true}, true},
		{"is_superuser flag", user.User{Role: user.RoleUser, IsSuperuser: true}, true},
	}
	for _, tc := range cases {
		if got := user.IsAdministrator(&tc.u); got != tc.want {
			t.Errorf("%s: IsAdministrator = %v, want %v", tc.name, got, tc.want)
		}
	}
}
