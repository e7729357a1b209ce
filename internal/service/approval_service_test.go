package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusbridge/portal-api/internal/models"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
)

type mockApprovalGateway struct {
	pending      []models.ApprovalRequest
	listed       []models.ApprovalRequest
	lastStatus   models.ApprovalStatus
	approveCalls []int
	rejectCalls  []int
	lastReason   string
	err          error

	block chan struct{}
}

func (m *mockApprovalGateway) PendingApprovals(ctx context.Context, token string, kind models.ApprovalKind) ([]models.ApprovalRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pending, nil
}

func (m *mockApprovalGateway) ListApprovals(ctx context.Context, token string, kind models.ApprovalKind, status models.ApprovalStatus) ([]models.ApprovalRequest, error) {
	m.lastStatus = status
	if m.err != nil {
		return nil, m.err
	}
	return m.listed, nil
}

func (m *mockApprovalGateway) ApproveRequest(ctx context.Context, token string, kind models.ApprovalKind, id int) error {
	if m.block != nil {
		<-m.block
	}
	if m.err != nil {
		return m.err
	}
	m.approveCalls = append(m.approveCalls, id)
	return nil
}

func (m *mockApprovalGateway) RejectRequest(ctx context.Context, token string, kind models.ApprovalKind, id int, reason string) error {
	if m.err != nil {
		return m.err
	}
	m.rejectCalls = append(m.rejectCalls, id)
	m.lastReason = reason
	return nil
}

func newApprovalServiceForTest(gateway *mockApprovalGateway, cache *CacheService) *ApprovalService {
	return NewApprovalService(gateway, cache, nil, zap.NewNop(), ApprovalServiceConfig{PendingTTL: time.Minute})
}

func TestApprovalServicePendingEmptyListIsCaughtUp(t *testing.T) {
	gateway := &mockApprovalGateway{pending: nil}
	svc := newApprovalServiceForTest(gateway, nil)

	requests, cacheHit, err := svc.Pending(context.Background(), "tok", models.KindTeacherApplication)
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.NotNil(t, requests)
	assert.Empty(t, requests)
}

func TestApprovalServicePendingUnknownKind(t *testing.T) {
	svc := newApprovalServiceForTest(&mockApprovalGateway{}, nil)

	_, _, err := svc.Pending(context.Background(), "tok", models.ApprovalKind("bogus"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestApprovalServiceListStatusFilter(t *testing.T) {
	gateway := &mockApprovalGateway{listed: []models.ApprovalRequest{
		{ID: 7, FullName: "Ada Lovelace", Status: models.ApprovalStatusApproved},
	}}
	svc := newApprovalServiceForTest(gateway, nil)

	requests, err := svc.List(context.Background(), "tok", models.KindStudentApplication, models.ApprovalStatusApproved)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.ApprovalStatusApproved, gateway.lastStatus)
	assert.Equal(t, models.ApprovalStatusApproved, requests[0].Status)
}

func TestApprovalServiceRejectRequiresReason(t *testing.T) {
	gateway := &mockApprovalGateway{}
	svc := newApprovalServiceForTest(gateway, nil)

	err := svc.Decide(context.Background(), "tok", models.KindSubjectRequest, 3, models.DecisionReject, "   ")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, gateway.rejectCalls)
}

func TestApprovalServiceRejectForwardsReason(t *testing.T) {
	gateway := &mockApprovalGateway{}
	svc := newApprovalServiceForTest(gateway, nil)

	err := svc.Decide(context.Background(), "tok", models.KindEnrollmentRequest, 4, models.DecisionReject, "course is full")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, gateway.rejectCalls)
	assert.Equal(t, "course is full", gateway.lastReason)
}

func TestApprovalServiceApprovePrunesCachedPending(t *testing.T) {
	gateway := &mockApprovalGateway{pending: []models.ApprovalRequest{
		{ID: 1, FullName: "First", Status: models.ApprovalStatusPending},
		{ID: 2, FullName: "Second", Status: models.ApprovalStatusPending},
	}}
	cacheSvc := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	svc := newApprovalServiceForTest(gateway, cacheSvc)

	_, cacheHit, err := svc.Pending(context.Background(), "tok", models.KindTeacherApplication)
	require.NoError(t, err)
	require.False(t, cacheHit)

	require.NoError(t, svc.Decide(context.Background(), "tok", models.KindTeacherApplication, 1, models.DecisionApprove, ""))

	requests, cacheHit, err := svc.Pending(context.Background(), "tok", models.KindTeacherApplication)
	require.NoError(t, err)
	assert.True(t, cacheHit)
	require.Len(t, requests, 1)
	assert.Equal(t, 2, requests[0].ID)
}

func TestApprovalServiceFailedDecisionKeepsPending(t *testing.T) {
	gateway := &mockApprovalGateway{pending: []models.ApprovalRequest{
		{ID: 1, Status: models.ApprovalStatusPending},
	}}
	cacheSvc := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	svc := newApprovalServiceForTest(gateway, cacheSvc)

	_, _, err := svc.Pending(context.Background(), "tok", models.KindSubjectRequest)
	require.NoError(t, err)

	gateway.err = appErrors.Clone(appErrors.ErrUpstream, "backend is unreachable")
	err = svc.Decide(context.Background(), "tok", models.KindSubjectRequest, 1, models.DecisionApprove, "")
	require.Error(t, err)

	gateway.err = nil
	requests, cacheHit, err := svc.Pending(context.Background(), "tok", models.KindSubjectRequest)
	require.NoError(t, err)
	assert.True(t, cacheHit)
	require.Len(t, requests, 1)
}

func TestApprovalServicePermissionDeniedPassthrough(t *testing.T) {
	gateway := &mockApprovalGateway{err: appErrors.Clone(appErrors.ErrPermissionDenied, "Access denied")}
	svc := newApprovalServiceForTest(gateway, nil)

	err := svc.Decide(context.Background(), "tok", models.KindTeacherApplication, 9, models.DecisionApprove, "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrPermissionDenied))
	assert.Contains(t, err.Error(), "Access denied")
}

func TestApprovalServiceDuplicateDecisionRefused(t *testing.T) {
	gateway := &mockApprovalGateway{block: make(chan struct{})}
	svc := newApprovalServiceForTest(gateway, nil)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- svc.Decide(context.Background(), "tok", models.KindTeacherApplication, 5, models.DecisionApprove, "")
	}()

	require.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		return len(svc.inflight) == 1
	}, time.Second, 5*time.Millisecond)

	err := svc.Decide(context.Background(), "tok", models.KindTeacherApplication, 5, models.DecisionApprove, "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))

	// A decision for a different id proceeds independently.
	other := &mockApprovalGateway{}
	require.NoError(t, newApprovalServiceForTest(other, nil).Decide(context.Background(), "tok", models.KindTeacherApplication, 6, models.DecisionApprove, ""))

	close(gateway.block)
	require.NoError(t, <-firstDone)
	assert.Equal(t, []int{5}, gateway.approveCalls)
}
