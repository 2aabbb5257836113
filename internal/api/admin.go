package api

import (
	"context"
	"fmt"
	"net/http"

	"skillswap-cli/internal/domain/message"
	"skillswap-cli/internal/domain/skill"
	"skillswap-cli/internal/domain/swap"
	"skillswap-cli/internal/domain/user"
	interfaces "skillswap-cli/internal/interfaces/api"
)

var _ interfaces.AdminAPI = (*Client)(nil)

// Export kinds accepted by ExportCSV.
const (
	ExportUsers   = "users"
	ExportSwaps   = "swaps"
	ExportRatings = "ratings"
)

// AdminUsers lists every member for moderation.
func (c *Client) AdminUsers(ctx context.Context) ([]user.User, error) {
	var out []user.User
	if err := c.do(ctx, http.MethodGet, "/auth/admin/users/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BanUser bans a member from the platform.
func (c *Client) BanUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/auth/admin/users/%d/ban/", id), nil, struct{}{}, nil)
}

// UnbanUser lifts a ban.
func (c *Client) UnbanUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/auth/admin/users/%d/unban/", id), nil, struct{}{}, nil)
}

// AdminUserSkills lists user skills awaiting moderation.
func (c *Client) AdminUserSkills(ctx context.Context) ([]skill.UserSkill, error) {
	var out []skill.UserSkill
	if err := c.do(ctx, http.MethodGet, "/auth/admin/user-skills/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveUserSkill approves a pending user skill.
func (c *Client) ApproveUserSkill(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/auth/admin/user-skills/%d/approve/", id), nil, struct{}{}, nil)
}

// RejectUserSkill rejects a pending user skill with a reason.
func (c *Client) RejectUserSkill(ctx context.Context, id int64, reason string) error {
	body := map[string]string{"rejection_reason": reason}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/auth/admin/user-skills/%d/reject/", id), nil, body, nil)
}

// AdminSwaps lists every swap request on the platform.
func (c *Client) AdminSwaps(ctx context.Context) ([]swap.Request, error) {
	var out []swap.Request
	if err := c.do(ctx, http.MethodGet, "/auth/admin/swaps/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlatformMessages lists platform announcements.
func (c *Client) PlatformMessages(ctx context.Context) ([]message.PlatformMessage, error) {
	var out []message.PlatformMessage
	if err := c.do(ctx, http.MethodGet, "/auth/admin/messages/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePlatformMessage publishes a new announcement.
func (c *Client) CreatePlatformMessage(ctx context.Context, req interfaces.PlatformMessageRequest) (*message.PlatformMessage, error) {
	var out message.PlatformMessage
	if err := c.do(ctx, http.MethodPost, "/auth/admin/messages/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePlatformMessage edits an announcement.
func (c *Client) UpdatePlatformMessage(ctx context.Context, id int64, req interfaces.PlatformMessageRequest) (*message.PlatformMessage, error) {
	var out message.PlatformMessage
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/auth/admin/messages/%d/", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportCSV downloads one of the CSV exports. kind is users, swaps or
// ratings. Returns the payload and the server-suggested file name.
func (c *Client) ExportCSV(ctx context.Context, kind string) ([]byte, string, error) {
	switch kind {
	case ExportUsers, ExportSwaps, ExportRatings:
	default:
		return nil, "", fmt.Errorf("unknown export kind %q", kind)
	}
	data, name, err := c.download(ctx, fmt.Sprintf("/auth/admin/export/%s/", kind))
	if err != nil {
		return nil, "", err
	}
	if name == "" {
		name = kind + ".csv"
	}
	return data, name, nil
}
