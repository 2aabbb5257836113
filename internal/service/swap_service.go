package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"skillswap-cli/internal/api"
	"skillswap-cli/internal/domain/swap"
	interfaces "skillswap-cli/internal/interfaces/api"
	"skillswap-cli/internal/querycache"
	"skillswap-cli/pkg/logger"
	"skillswap-cli/pkg/validator"
)

// Cache key namespaces owned by the swap service.
const (
	swapRequestsKey = "swaps:requests"
	swapReceivedKey = "swaps:received"
)

// ErrNotPending is returned when accept/reject is attempted on a request
// that already left the pending state. The guard runs before any network
// call.
var ErrNotPending = errors.New("request is no longer pending")

// ErrUnknownRequest is returned when the request id is not in local state.
var ErrUnknownRequest = errors.New("unknown swap request")

// SwapService manages the swap request lifecycle: creation, the
// pending→accepted / pending→rejected transitions, and the optimistic local
// state those transitions update ahead of server confirmation.
type SwapService struct {
	api   interfaces.SwapAPI
	cache *querycache.Cache

	// requests is the local view the UI renders, keyed by request id.
	requests map[int64]*swap.Request
}

func NewSwapService(apiClient interfaces.SwapAPI, cache *querycache.Cache) *SwapService {
	return &SwapService{
		api:      apiClient,
		cache:    cache,
		requests: make(map[int64]*swap.Request),
	}
}

type statusParams struct {
	Status string `json:"status"`
}

// Create validates and submits a new swap proposal. Required-field failures
// are caught locally; no HTTP call is issued for them. A successful create
// invalidates every cached request list.
func (s *SwapService) Create(ctx context.Context, req interfaces.CreateSwapRequest) (*swap.Request, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, &api.ValidationError{
			StatusCode: http.StatusBadRequest,
			Fields:     validator.FieldMap(err),
		}
	}

	created, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return s.api.CreateSwapRequest(ctx, req)
	}, swapRequestsKey+"*", swapReceivedKey+"*")
	if err != nil {
		return nil, err
	}

	r := created.(*swap.Request)
	s.requests[r.ID] = r
	logger.Info("Created swap request %d to user %d", r.ID, req.ToUserID)
	return r, nil
}

// Sent lists requests the current user sent or received, optionally
// filtered by status, reading through the cache.
func (s *SwapService) Sent(ctx context.Context, status string) ([]swap.Request, error) {
	key := querycache.Key(swapRequestsKey, statusParams{Status: status})
	reqs, err := querycache.Get(ctx, s.cache, key, func(ctx context.Context) ([]swap.Request, error) {
		return s.api.SwapRequests(ctx, status)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load swap requests: %w", err)
	}
	s.track(reqs)
	return reqs, nil
}

// Received lists requests addressed to the current user and refreshes the
// local view the accept/reject transitions operate on.
func (s *SwapService) Received(ctx context.Context, status string) ([]swap.Request, error) {
	key := querycache.Key(swapReceivedKey, statusParams{Status: status})
	reqs, err := querycache.Get(ctx, s.cache, key, func(ctx context.Context) ([]swap.Request, error) {
		return s.api.ReceivedRequests(ctx, status)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load received requests: %w", err)
	}
	s.track(reqs)
	return reqs, nil
}

// Accept moves a pending request to accepted.
func (s *SwapService) Accept(ctx context.Context, id int64) (*swap.Request, error) {
	return s.transition(ctx, id, swap.StatusAccepted)
}

// Reject moves a pending request to rejected.
func (s *SwapService) Reject(ctx context.Context, id int64) (*swap.Request, error) {
	return s.transition(ctx, id, swap.StatusRejected)
}

// Counts tallies the local view by status for the filter tabs.
func (s *SwapService) Counts() map[string]int {
	out := make(map[string]int)
	for _, r := range s.requests {
		out[r.Status]++
	}
	return out
}

// Tally counts received requests by status from an unfiltered load, so the
// filter tabs show real bucket sizes even while a filtered view is active.
func (s *SwapService) Tally(ctx context.Context) (map[string]int, error) {
	reqs, err := s.Received(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make(map[string]int)
	for i := range reqs {
		out[reqs[i].Status]++
	}
	return out, nil
}

// Get returns a request from the local view.
func (s *SwapService) Get(id int64) (*swap.Request, bool) {
	r, ok := s.requests[id]
	return r, ok
}

// transition applies one client-legal status change with an optimistic local
// update. The prior status is restored if the server call fails; on success
// the server's record wins over the optimistic value. Either way every
// cached request list is invalidated so counts and tabs re-derive.
func (s *SwapService) transition(ctx context.Context, id int64, target string) (*swap.Request, error) {
	r, ok := s.requests[id]
	if !ok {
		return nil, ErrUnknownRequest
	}
	if !r.CanTransition(target) {
		return nil, fmt.Errorf("cannot move request %d from %s to %s: %w", id, r.Status, target, ErrNotPending)
	}

	prior := r.Status
	r.Status = target

	updated, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return s.api.UpdateRequestStatus(ctx, id, target)
	}, swapRequestsKey+"*", swapReceivedKey+"*")
	if err != nil {
		r.Status = prior
		logger.Warn("Transition of request %d to %s failed, rolled back to %s: %v", id, target, prior, err)
		return nil, err
	}

	// Reconcile to the server's record; its timestamps win over optimism.
	server := updated.(*swap.Request)
	*r = *server
	logger.Info("Swap request %d is now %s", id, r.Status)
	return r, nil
}

func (s *SwapService) track(reqs []swap.Request) {
	for i := range reqs {
		r := reqs[i]
		s.requests[r.ID] = &r
	}
}
