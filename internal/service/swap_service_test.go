package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"skillswap-cli/internal/api"
	"skillswap-cli/internal/api/mock"
	"skillswap-cli/internal/domain/swap"
	interfaces "skillswap-cli/internal/interfaces/api"
	"skillswap-cli/internal/querycache"
)

func newSwapFixture(t *testing.T) (*SwapService, *mock.Client, *querycache.Cache) {
	t.Helper()
	m := mock.NewClient()
	m.Received = []swap.Request{
		{ID: 7, Status: swap.StatusPending, Message: "Trade Go for Spanish?"},
		{ID: 8, Status: swap.StatusAccepted, Message: "Piano for cooking"},
	}
	cache := querycache.New(querycache.Options{StaleAfter: time.Minute})
	t.Cleanup(cache.Close)
	return NewSwapService(m, cache), m, cache
}

func validCreateRequest() interfaces.CreateSwapRequest {
	return interfaces.CreateSwapRequest{
		ToUserID:       2,
		SkillOfferedID: 10,
		SkillWantedID:  11,
		Message:        "Trade Go for Spanish?",
		Duration:       swap.Duration1Hour,
		PreferredTime:  swap.TimeWeekendMorning,
	}
}

func TestCreateRejectsEmptyMessageLocally(t *testing.T) {
	svc, m, _ := newSwapFixture(t)

	req := validCreateRequest()
	req.Message = ""
	_, err := svc.Create(context.Background(), req)

	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected a validation error, got %v", err)
	}
	if ve.Fields["message"] == "" {
		t.Errorf("Expected an inline error on message, got %v", ve.Fields)
	}
	if m.TotalCalls() != 0 {
		t.Errorf("Expected no API call for a local validation failure, got %d", m.TotalCalls())
	}
}

func TestCreateRejectsBadDurationLocally(t *testing.T) {
	svc, m, _ := newSwapFixture(t)

	req := validCreateRequest()
	req.Duration = "45min"
	_, err := svc.Create(context.Background(), req)

	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected a validation error, got %v", err)
	}
	if m.TotalCalls() != 0 {
		t.Errorf("Expected no API call, got %d", m.TotalCalls())
	}
}

func TestCreateTracksNewRequest(t *testing.T) {
	svc, m, _ := newSwapFixture(t)

	r, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if r.Status != swap.StatusPending {
		t.Errorf("Expected new request pending, got %s", r.Status)
	}
	if _, ok := svc.Get(r.ID); !ok {
		t.Error("Expected created request in local state")
	}
	if m.CallCount("CreateSwapRequest") != 1 {
		t.Errorf("Expected 1 create call, got %d", m.CallCount("CreateSwapRequest"))
	}
}

func TestAcceptOptimisticThenReconciled(t *testing.T) {
	svc, m, _ := newSwapFixture(t)
	if _, err := svc.Received(context.Background(), ""); err != nil {
		t.Fatalf("Received failed: %v", err)
	}

	r, err := svc.Accept(context.Background(), 7)
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if r.Status != swap.StatusAccepted {
		t.Errorf("Expected accepted, got %s", r.Status)
	}
	if m.CallCount("UpdateRequestStatus") != 1 {
		t.Errorf("Expected 1 status call, got %d", m.CallCount("UpdateRequestStatus"))
	}
}

func TestAcceptRollsBackOnServerFailure(t *testing.T) {
	svc, m, _ := newSwapFixture(t)
	if _, err := svc.Received(context.Background(), ""); err != nil {
		t.Fatalf("Received failed: %v", err)
	}

	m.Fail = &api.NetworkError{Err: fmt.Errorf("connection refused")}
	if _, err := svc.Accept(context.Background(), 7); err == nil {
		t.Fatal("Expected accept to fail")
	}

	r, ok := svc.Get(7)
	if !ok {
		t.Fatal("Expected request 7 in local state")
	}
	if r.Status != swap.StatusPending {
		t.Errorf("Expected rollback to pending, got %s", r.Status)
	}

	// The request is still actionable once the server recovers.
	m.Fail = nil
	if _, err := svc.Accept(context.Background(), 7); err != nil {
		t.Errorf("Expected accept to succeed after recovery: %v", err)
	}
}

func TestTransitionGuardRunsBeforeNetwork(t *testing.T) {
	svc, m, _ := newSwapFixture(t)
	if _, err := svc.Received(context.Background(), ""); err != nil {
		t.Fatalf("Received failed: %v", err)
	}

	if _, err := svc.Accept(context.Background(), 8); !errors.Is(err, ErrNotPending) {
		t.Fatalf("Expected ErrNotPending for an accepted request, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), 8); !errors.Is(err, ErrNotPending) {
		t.Fatalf("Expected ErrNotPending, got %v", err)
	}
	if m.CallCount("UpdateRequestStatus") != 0 {
		t.Errorf("Expected no status call for an illegal transition, got %d", m.CallCount("UpdateRequestStatus"))
	}
}

func TestTransitionUnknownRequest(t *testing.T) {
	svc, m, _ := newSwapFixture(t)
	if _, err := svc.Accept(context.Background(), 999); !errors.Is(err, ErrUnknownRequest) {
		t.Fatalf("Expected ErrUnknownRequest, got %v", err)
	}
	if m.TotalCalls() != 0 {
		t.Errorf("Expected no API call, got %d", m.TotalCalls())
	}
}

func TestTransitionInvalidatesCachedLists(t *testing.T) {
	svc, m, _ := newSwapFixture(t)
	svc.Received(context.Background(), "")
	svc.Received(context.Background(), "")
	if m.CallCount("ReceivedRequests") != 1 {
		t.Fatalf("Expected cached second read, got %d calls", m.CallCount("ReceivedRequests"))
	}

	if _, err := svc.Reject(context.Background(), 7); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	svc.Received(context.Background(), "")
	if m.CallCount("ReceivedRequests") != 2 {
		t.Errorf("Expected read after write to refetch, got %d calls", m.CallCount("ReceivedRequests"))
	}
}

func TestTallyCountsAllBucketsUnderFilter(t *testing.T) {
	svc, m, _ := newSwapFixture(t)

	// A filtered view only loads one bucket.
	filtered, err := svc.Received(context.Background(), swap.StatusPending)
	if err != nil {
		t.Fatalf("Received failed: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("Expected 1 pending request, got %d", len(filtered))
	}

	counts, err := svc.Tally(context.Background())
	if err != nil {
		t.Fatalf("Tally failed: %v", err)
	}
	if counts[swap.StatusPending] != 1 || counts[swap.StatusAccepted] != 1 {
		t.Errorf("Expected the tally to cover every bucket, got %v", counts)
	}
	if m.CallCount("ReceivedRequests") != 2 {
		t.Errorf("Expected the tally to load the unfiltered list, got %d calls", m.CallCount("ReceivedRequests"))
	}
}

func TestCountsReflectLocalView(t *testing.T) {
	svc, _, _ := newSwapFixture(t)
	svc.Received(context.Background(), "")

	counts := svc.Counts()
	if counts[swap.StatusPending] != 1 || counts[swap.StatusAccepted] != 1 {
		t.Errorf("Expected 1 pending and 1 accepted, got %v", counts)
	}

	svc.Accept(context.Background(), 7)
	counts = svc.Counts()
	if counts[swap.StatusPending] != 0 || counts[swap.StatusAccepted] != 2 {
		t.Errorf("Expected accept to move the tally, got %v", counts)
	}
}
