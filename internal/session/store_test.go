package session

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := newStore(t)

	err := s.Save([]*http.Cookie{
		{Name: "sessionid", Value: "sess-1", Path: "/", HttpOnly: true},
		{Name: "csrftoken", Value: "token-abc", Path: "/"},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cookies, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cookies) != 2 {
		t.Fatalf("Expected 2 cookies, got %d", len(cookies))
	}
	if cookies[0].Name != "sessionid" || cookies[0].Value != "sess-1" {
		t.Errorf("Expected sessionid cookie restored, got %+v", cookies[0])
	}
	if !cookies[0].HttpOnly {
		t.Error("Expected HttpOnly preserved")
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := newStore(t)
	cookies, err := s.Load()
	if err != nil {
		t.Fatalf("Expected no error for a missing file, got %v", err)
	}
	if cookies != nil {
		t.Errorf("Expected no cookies, got %v", cookies)
	}
}

func TestLoadCorruptFileIsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	cookies, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Expected corrupt file treated as no session, got %v", err)
	}
	if cookies != nil {
		t.Errorf("Expected no cookies, got %v", cookies)
	}
}

func TestLoadDropsExpiredCookies(t *testing.T) {
	s := newStore(t)
	err := s.Save([]*http.Cookie{
		{Name: "sessionid", Value: "old", Expires: time.Now().Add(-time.Hour)},
		{Name: "csrftoken", Value: "live", Expires: time.Now().Add(time.Hour)},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cookies, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cookies) != 1 || cookies[0].Name != "csrftoken" {
		t.Errorf("Expected only the live cookie, got %v", cookies)
	}
}

func TestClear(t *testing.T) {
	s := newStore(t)
	s.Save([]*http.Cookie{{Name: "sessionid", Value: "sess-1"}})

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Errorf("Expected clearing twice to be fine, got %v", err)
	}
	cookies, _ := s.Load()
	if cookies != nil {
		t.Errorf("Expected no session after clear, got %v", cookies)
	}
}
