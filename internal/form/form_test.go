package form

import (
	"fmt"
	"testing"

	"skillswap-cli/internal/api"
	interfaces "skillswap-cli/internal/interfaces/api"
)

func TestSetClearsFieldError(t *testing.T) {
	f := New()
	f.SetError("email", "Email is required")

	f.Set("email", "alice@example.com")
	if f.Error("email") != "" {
		t.Errorf("Expected editing a field to clear its error, got %q", f.Error("email"))
	}
	if !f.Dirty() {
		t.Error("Expected form to be dirty after Set")
	}
}

func TestValidateRules(t *testing.T) {
	f := NewWith(map[string]string{
		"first_name": "Alice",
		"last_name":  "   ",
	})

	ok := f.Validate(
		Required("first_name", "First name is required"),
		Required("last_name", "Last name is required"),
	)
	if ok {
		t.Fatal("Expected validation to fail")
	}
	if f.Error("first_name") != "" {
		t.Errorf("Expected no error on first_name, got %q", f.Error("first_name"))
	}
	if f.Error("last_name") != "Last name is required" {
		t.Errorf("Expected whitespace-only value to fail required, got %q", f.Error("last_name"))
	}

	f.Set("last_name", "Nguyen")
	if !f.Validate(Required("last_name", "Last name is required")) {
		t.Errorf("Expected validation to pass, errors: %v", f.Errors())
	}
	if !f.Valid() {
		t.Error("Expected form valid after passing validation")
	}
}

func TestValidateClearsStaleErrors(t *testing.T) {
	f := New()
	f.SetError("bio", "too long")

	if !f.Validate() {
		t.Fatal("Expected validation with no rules to pass")
	}
	if f.Error("bio") != "" {
		t.Errorf("Expected stale error cleared, got %q", f.Error("bio"))
	}
}

func TestValidateStructMergesTagFailures(t *testing.T) {
	f := New()
	req := interfaces.LoginRequest{Email: "not-an-email", Password: ""}

	if f.ValidateStruct(&req) {
		t.Fatal("Expected struct validation to fail")
	}
	if f.Error("email") == "" {
		t.Error("Expected an inline error on email")
	}
	if f.Error("password") == "" {
		t.Error("Expected an inline error on password")
	}
}

func TestMergeServerErrors(t *testing.T) {
	f := New()

	merged := f.MergeServerErrors(&api.ValidationError{
		Fields: map[string]string{
			"email":          "A user with this email already exists.",
			api.GeneralField: "Please correct the errors below.",
		},
	})
	if !merged {
		t.Fatal("Expected field errors to merge")
	}
	if f.Error("email") != "A user with this email already exists." {
		t.Errorf("Expected server field error inline, got %q", f.Error("email"))
	}
	if f.Error(api.GeneralField) == "" {
		t.Error("Expected non-field error under the general key")
	}
}

func TestMergeServerErrorsIgnoresOtherClasses(t *testing.T) {
	f := New()
	if f.MergeServerErrors(&api.ServerError{StatusCode: 500}) {
		t.Error("Expected server errors to be left for the page-level fallback")
	}
	if f.MergeServerErrors(fmt.Errorf("wrapped: %w", &api.NetworkError{Err: fmt.Errorf("connection refused")})) {
		t.Error("Expected network errors to be left for the page-level fallback")
	}
	if len(f.Errors()) != 0 {
		t.Errorf("Expected no inline errors, got %v", f.Errors())
	}
}

func TestSubmittingFlag(t *testing.T) {
	f := New()
	f.BeginSubmit()
	if !f.Submitting() {
		t.Error("Expected submitting true after BeginSubmit")
	}
	f.EndSubmit()
	if f.Submitting() {
		t.Error("Expected submitting false after EndSubmit")
	}
}
