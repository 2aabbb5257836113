package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"skillswap-cli/internal/session"
	"skillswap-cli/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const csrfCookieName = "csrftoken"

// Client wraps outbound calls to the SkillSwap API. It attaches session
// cookies to every call and the anti-forgery token to mutating calls, and
// normalizes failures into the NetworkError / AuthError / ValidationError /
// ServerError taxonomy. It never navigates or clears state on AuthError;
// that policy belongs to the caller.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     *cookiejar.Jar
	limiter *rate.Limiter
	store   *session.Store
}

// Options configures a Client.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	Session           *session.Store
}

// NewClient builds a Client and restores any persisted session cookies.
func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 10
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}

	c := &Client{
		baseURL: base,
		jar:     jar,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		store:   opts.Session,
		http: &http.Client{
			Jar:     jar,
			Timeout: opts.Timeout,
		},
	}

	if c.store != nil {
		cookies, err := c.store.Load()
		if err != nil {
			logger.Warn("Failed to restore session: %v", err)
		} else if len(cookies) > 0 {
			jar.SetCookies(base, cookies)
		}
	}

	return c, nil
}

// csrfToken reads the anti-forgery token the server set as a cookie.
func (c *Client) csrfToken() string {
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do issues a JSON request and decodes the JSON response into out, which may
// be nil for calls whose response body does not matter.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send applies pacing, common headers and error classification.
func (c *Client) send(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return &NetworkError{Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if isMutating(req.Method) {
		if token := c.csrfToken(); token != "" {
			req.Header.Set("X-CSRFToken", token)
		}
	}

	logger.Debug("API request: %s %s", req.Method, req.URL.Path)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	logger.Debug("API response: %s %s %d", req.Method, req.URL.Path, resp.StatusCode)

	c.persistSession()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classify(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// download issues a GET whose response is an opaque binary payload
// (the CSV export endpoints). Returns the body and the suggested file name
// from Content-Disposition, if any.
func (c *Client) download(ctx context.Context, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(path, nil), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", &NetworkError{Err: err}
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", classify(resp.StatusCode, data)
	}

	name := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if idx := strings.Index(cd, "filename="); idx >= 0 {
			name = strings.Trim(cd[idx+len("filename="):], `"`)
		}
	}
	return data, name, nil
}

// upload issues a multipart POST with a single file field.
func (c *Client) upload(ctx context.Context, path, field, fileName string, content []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, fileName)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, out)
}

// persistSession mirrors the cookie jar into the session store so the next
// CLI invocation keeps the signed-in session.
func (c *Client) persistSession() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(c.jar.Cookies(c.baseURL)); err != nil {
		logger.Warn("Failed to persist session: %v", err)
	}
}

// ClearSession drops the in-memory and persisted session cookies.
func (c *Client) ClearSession() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("failed to reset cookie jar: %w", err)
	}
	c.jar = jar
	c.http.Jar = jar
	if c.store != nil {
		return c.store.Clear()
	}
	return nil
}
