package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"skillswap-cli/internal/domain/user"
	interfaces "skillswap-cli/internal/interfaces/api"
)

var _ interfaces.AuthAPI = (*Client)(nil)
var _ interfaces.UserAPI = (*Client)(nil)

// avatar upload limits, enforced before any bytes go on the wire
const maxAvatarBytes = 5 * 1024 * 1024

var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type messageUser struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req interfaces.RegisterRequest) (*user.User, error) {
	var out messageUser
	if err := c.do(ctx, http.MethodPost, "/auth/register/", nil, req, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Login authenticates and lets the server set the session cookie.
func (c *Client) Login(ctx context.Context, req interfaces.LoginRequest) (*user.User, error) {
	var out messageUser
	if err := c.do(ctx, http.MethodPost, "/auth/login/", nil, req, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout/", nil, struct{}{}, nil)
}

// CheckAuth reports whether the stored session is still valid.
func (c *Client) CheckAuth(ctx context.Context) (*interfaces.AuthCheck, error) {
	var out interfaces.AuthCheck
	if err := c.do(ctx, http.MethodGet, "/auth/check/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (*user.User, error) {
	var out user.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial profile edit.
func (c *Client) UpdateProfile(ctx context.Context, req interfaces.ProfileUpdate) (*user.User, error) {
	var out user.User
	if err := c.do(ctx, http.MethodPatch, "/auth/profile/update/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAvatar validates the image locally (size and MIME type) and uploads
// it. Returns the new avatar URL.
func (c *Client) UploadAvatar(ctx context.Context, fileName string, content []byte) (string, error) {
	if len(content) > maxAvatarBytes {
		return "", &ValidationError{
			StatusCode: http.StatusBadRequest,
			Fields:     map[string]string{"avatar": "File too large. Maximum size is 5MB."},
		}
	}
	contentType := http.DetectContentType(content)
	if !allowedAvatarTypes[contentType] {
		return "", &ValidationError{
			StatusCode: http.StatusBadRequest,
			Fields:     map[string]string{"avatar": "Invalid file type. Only JPEG, PNG, and GIF are allowed."},
		}
	}

	var out struct {
		Message   string `json:"message"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.upload(ctx, "/auth/profile/avatar/", "avatar", fileName, content, &out); err != nil {
		return "", err
	}
	return out.AvatarURL, nil
}

// DeleteAvatar removes the current avatar.
func (c *Client) DeleteAvatar(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/auth/profile/avatar/delete/", nil, nil, nil)
}

// Users lists other members, with server-side search and paging.
func (c *Client) Users(ctx context.Context, search string, page int) (*interfaces.Paged[user.User], error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	var out interfaces.Paged[user.User]
	if err := c.do(ctx, http.MethodGet, "/auth/users/", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserDetail fetches one member's full profile.
func (c *Client) UserDetail(ctx context.Context, id int64) (*user.User, error) {
	var out user.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/auth/users/%d/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
