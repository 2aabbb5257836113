package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"skillswap-cli/internal/domain/swap"
	interfaces "skillswap-cli/internal/interfaces/api"
)

var _ interfaces.SwapAPI = (*Client)(nil)

func statusQuery(status string) url.Values {
	if status == "" {
		return nil
	}
	query := url.Values{}
	query.Set("status", status)
	return query
}

// SwapRequests lists requests the current user sent or received,
// optionally filtered by status.
func (c *Client) SwapRequests(ctx context.Context, status string) ([]swap.Request, error) {
	var out []swap.Request
	if err := c.do(ctx, http.MethodGet, "/swaps/requests/", statusQuery(status), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSwapRequest proposes a swap. Duplicate detection is server-enforced
// and comes back as a ValidationError.
func (c *Client) CreateSwapRequest(ctx context.Context, req interfaces.CreateSwapRequest) (*swap.Request, error) {
	var out swap.Request
	if err := c.do(ctx, http.MethodPost, "/swaps/requests/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReceivedRequests lists requests addressed to the current user.
func (c *Client) ReceivedRequests(ctx context.Context, status string) ([]swap.Request, error) {
	var out []swap.Request
	if err := c.do(ctx, http.MethodGet, "/swaps/requests/received/", statusQuery(status), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateRequestStatus asks the server to move a request to the given status.
// The returned record is authoritative; callers reconcile to it.
func (c *Client) UpdateRequestStatus(ctx context.Context, id int64, status string) (*swap.Request, error) {
	body := map[string]string{"status": status}
	var out swap.Request
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/swaps/requests/%d/status/", id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
