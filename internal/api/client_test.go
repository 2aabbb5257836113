package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"skillswap-cli/internal/domain/swap"
	interfaces "skillswap-cli/internal/interfaces/api"
	"skillswap-cli/internal/session"
)

type recordedRequest struct {
	method string
	path   string
	csrf   string
	reqID  string
}

// newTestServer runs a minimal stand-in for the API: login sets the session
// and anti-forgery cookies, every other route answers from the handlers map.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			csrf:   r.Header.Get("X-CSRFToken"),
			reqID:  r.Header.Get("X-Request-ID"),
		})
		if h, ok := handlers[r.Method+" "+r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &seen
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "sess-1", Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "token-abc", Path: "/"})
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message":"ok","user":{"id":1,"email":"alice@example.com","role":"user"}}`))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Options{BaseURL: baseURL, RequestsPerSecond: 1000, Burst: 100})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestCSRFHeaderOnMutatingCallsOnly(t *testing.T) {
	srv, seen := newTestServer(t, map[string]http.HandlerFunc{
		"POST /auth/login/": loginHandler,
		"GET /auth/check/": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"authenticated":true}`))
		},
		"POST /swaps/requests/": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":42,"status":"pending"}`))
		},
	})
	c := newTestClient(t, srv.URL)

	if _, err := c.Login(context.Background(), interfaces.LoginRequest{Email: "alice@example.com", Password: "x"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := c.CheckAuth(context.Background()); err != nil {
		t.Fatalf("CheckAuth failed: %v", err)
	}
	if _, err := c.CreateSwapRequest(context.Background(), interfaces.CreateSwapRequest{
		ToUserID: 2, SkillOfferedID: 1, SkillWantedID: 2,
		Message: "hi", Duration: swap.Duration1Hour, PreferredTime: swap.TimeFlexible,
	}); err != nil {
		t.Fatalf("CreateSwapRequest failed: %v", err)
	}

	reqs := *seen
	if len(reqs) != 3 {
		t.Fatalf("Expected 3 requests, got %d", len(reqs))
	}
	if reqs[1].csrf != "" {
		t.Errorf("Expected no anti-forgery header on GET, got %q", reqs[1].csrf)
	}
	if reqs[2].csrf != "token-abc" {
		t.Errorf("Expected anti-forgery header on POST, got %q", reqs[2].csrf)
	}
	for i, r := range reqs {
		if r.reqID == "" {
			t.Errorf("Expected request %d to carry a request id", i)
		}
	}
}

func TestErrorClassification(t *testing.T) {
	srv, _ := newTestServer(t, map[string]http.HandlerFunc{
		"GET /auth/check/": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Authentication credentials were not provided."}`))
		},
		"POST /auth/login/": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"email":["Enter a valid email address."],"error":"Invalid input."}`))
		},
		"GET /auth/profile/": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"boom"}`))
		},
	})
	c := newTestClient(t, srv.URL)

	_, err := c.CheckAuth(context.Background())
	var ae *AuthError
	if !errors.As(err, &ae) || ae.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected AuthError 401, got %v", err)
	}
	if IsRetryable(err) {
		t.Error("Expected auth failures non-retryable")
	}

	_, err = c.Login(context.Background(), interfaces.LoginRequest{Email: "x", Password: "y"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if ve.Fields["email"] != "Enter a valid email address." {
		t.Errorf("Expected field error on email, got %v", ve.Fields)
	}
	if ve.Fields[GeneralField] != "Invalid input." {
		t.Errorf("Expected non-field error under general, got %v", ve.Fields)
	}

	_, err = c.Profile(context.Background())
	var se *ServerError
	if !errors.As(err, &se) || se.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected ServerError 500, got %v", err)
	}
	if IsRetryable(err) {
		t.Error("Expected server errors non-retryable")
	}
}

func TestNetworkFailureIsRetryable(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	c := newTestClient(t, srv.URL)
	srv.Close()

	_, err := c.CheckAuth(context.Background())
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("Expected NetworkError, got %v", err)
	}
	if !IsRetryable(err) {
		t.Error("Expected network failures retryable")
	}
}

func TestUploadAvatarRejectsLocally(t *testing.T) {
	srv, seen := newTestServer(t, nil)
	c := newTestClient(t, srv.URL)

	var ve *ValidationError
	_, err := c.UploadAvatar(context.Background(), "big.png", make([]byte, maxAvatarBytes+1))
	if !errors.As(err, &ve) || ve.Fields["avatar"] == "" {
		t.Errorf("Expected a local size rejection, got %v", err)
	}

	_, err = c.UploadAvatar(context.Background(), "notes.txt", []byte("plain text, not an image"))
	if !errors.As(err, &ve) || ve.Fields["avatar"] == "" {
		t.Errorf("Expected a local type rejection, got %v", err)
	}

	if len(*seen) != 0 {
		t.Errorf("Expected no HTTP request for locally rejected uploads, got %d", len(*seen))
	}
}

func TestUploadAvatarAcceptsPNG(t *testing.T) {
	srv, seen := newTestServer(t, map[string]http.HandlerFunc{
		"POST /auth/profile/avatar/": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message":"ok","avatar_url":"/media/avatars/pic.png"}`))
		},
	})
	c := newTestClient(t, srv.URL)

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	url, err := c.UploadAvatar(context.Background(), "pic.png", png)
	if err != nil {
		t.Fatalf("UploadAvatar failed: %v", err)
	}
	if url != "/media/avatars/pic.png" {
		t.Errorf("Expected avatar URL returned, got %q", url)
	}
	if len(*seen) != 1 {
		t.Errorf("Expected 1 upload request, got %d", len(*seen))
	}
}

func TestSessionPersistsAcrossClients(t *testing.T) {
	srv, _ := newTestServer(t, map[string]http.HandlerFunc{
		"POST /auth/login/": loginHandler,
		"GET /auth/check/": func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie("sessionid"); err != nil || cookie.Value != "sess-1" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"no session"}`))
				return
			}
			w.Write([]byte(`{"authenticated":true,"user":{"id":1}}`))
		},
	})

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	c, err := NewClient(Options{BaseURL: srv.URL, RequestsPerSecond: 1000, Burst: 100, Session: store})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if _, err := c.Login(context.Background(), interfaces.LoginRequest{Email: "alice@example.com", Password: "x"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// A fresh client restores the persisted cookies.
	c2, err := NewClient(Options{BaseURL: srv.URL, RequestsPerSecond: 1000, Burst: 100, Session: store})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	check, err := c2.CheckAuth(context.Background())
	if err != nil {
		t.Fatalf("CheckAuth with restored session failed: %v", err)
	}
	if !check.Authenticated {
		t.Error("Expected restored session authenticated")
	}

	// ClearSession drops both the jar and the stored file.
	if err := c2.ClearSession(); err != nil {
		t.Fatalf("ClearSession failed: %v", err)
	}
	if _, err := c2.CheckAuth(context.Background()); !IsAuth(err) {
		t.Errorf("Expected auth failure after clearing the session, got %v", err)
	}
}

func TestUsersQueryParameters(t *testing.T) {
	var gotQuery string
	srv, _ := newTestServer(t, map[string]http.HandlerFunc{
		"GET /auth/users/": func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`{"count":1,"results":[{"id":2,"first_name":"Bob"}]}`))
		},
	})
	c := newTestClient(t, srv.URL)

	paged, err := c.Users(context.Background(), "photo", 3)
	if err != nil {
		t.Fatalf("Users failed: %v", err)
	}
	if paged.Count != 1 || len(paged.Results) != 1 {
		t.Errorf("Expected one result, got %+v", paged)
	}
	if gotQuery != "page=3&search=photo" {
		t.Errorf("Expected search and page encoded, got %q", gotQuery)
	}
}

func TestBaseURLWithPathPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"authenticated":false}`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL+"/api/")
	if _, err := c.CheckAuth(context.Background()); err != nil {
		t.Fatalf("CheckAuth failed: %v", err)
	}
	if gotPath != "/api/auth/check/" {
		t.Errorf("Expected prefixed path, got %q", gotPath)
	}
}
