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

type mockDashboardGateway struct {
	dashboard *models.StudentDashboard
	err       error
	calls     int
}

func (m *mockDashboardGateway) StudentDashboard(ctx context.Context, token string) (*models.StudentDashboard, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.dashboard, nil
}

func TestDashboardServiceCachesPerCaller(t *testing.T) {
	gateway := &mockDashboardGateway{dashboard: &models.StudentDashboard{
		Enrollments: []models.CourseEnrollment{{CourseID: 1, CourseCode: "CS101", CourseTitle: "Intro to CS", Status: "active"}},
		Summary:     models.DashboardSummary{ActiveCourses: 1, AverageScore: 87.5},
	}}
	cacheSvc := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	svc := NewDashboardService(gateway, cacheSvc, zap.NewNop(), DashboardServiceConfig{CacheTTL: time.Minute})

	dashboard, cacheHit, err := svc.Student(context.Background(), "token-a")
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 1, dashboard.Summary.ActiveCourses)

	dashboard, cacheHit, err = svc.Student(context.Background(), "token-a")
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, "CS101", dashboard.Enrollments[0].CourseCode)
	assert.Equal(t, 1, gateway.calls)

	// Another caller does not share the cached entry.
	_, cacheHit, err = svc.Student(context.Background(), "token-b")
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 2, gateway.calls)
}

func TestDashboardServiceGatewayError(t *testing.T) {
	gateway := &mockDashboardGateway{err: appErrors.Clone(appErrors.ErrUpstream, "backend is unreachable")}
	svc := NewDashboardService(gateway, nil, zap.NewNop(), DashboardServiceConfig{})

	_, _, err := svc.Student(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUpstream))
}
