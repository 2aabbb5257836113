package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GeneralField is where error bodies without a field name land in a
// ValidationError, so forms can show them the same way as inline errors.
const GeneralField = "general"

// NetworkError is a transport-level failure. The only retryable class.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is a 401 or 403. The adapter never redirects on it; callers
// decide whether to clear cached identity or just display it.
type AuthError struct {
	StatusCode int
	Detail     string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("authentication failed (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("authentication failed (%d)", e.StatusCode)
}

// ValidationError is a 400-class rejection carrying a field -> message map
// that form controllers merge into their inline error state.
type ValidationError struct {
	StatusCode int
	Fields     map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("request rejected (%d)", e.StatusCode)
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ServerError is a 5xx. Shown as a generic failure, logged, not retried.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d)", e.StatusCode)
}

// IsRetryable reports whether the cache layer may retry the call.
func IsRetryable(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// classify maps a non-2xx response body to the error taxonomy.
func classify(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{StatusCode: status, Detail: bodyDetail(body)}
	case status >= 500:
		return &ServerError{StatusCode: status, Detail: bodyDetail(body)}
	default:
		return &ValidationError{StatusCode: status, Fields: fieldErrors(body)}
	}
}

// fieldErrors parses a DRF-style error body into a field map. Bodies come in
// three shapes: {"field": ["msg", ...]}, {"field": "msg"} and
// {"error"|"detail": "msg"}; anything unparseable lands under "general".
func fieldErrors(body []byte) map[string]string {
	fields := make(map[string]string)
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		if len(body) > 0 {
			fields[GeneralField] = strings.TrimSpace(string(body))
		}
		return fields
	}
	for key, val := range raw {
		name := key
		if key == "error" || key == "detail" || key == "non_field_errors" {
			name = GeneralField
		}
		var msg string
		if err := json.Unmarshal(val, &msg); err == nil {
			fields[name] = msg
			continue
		}
		var msgs []string
		if err := json.Unmarshal(val, &msgs); err == nil && len(msgs) > 0 {
			fields[name] = msgs[0]
			continue
		}
		fields[name] = strings.TrimSpace(string(val))
	}
	return fields
}

func bodyDetail(body []byte) string {
	var raw struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &raw); err == nil {
		if raw.Detail != "" {
			return raw.Detail
		}
		if raw.Error != "" {
			return raw.Error
		}
	}
	return ""
}
