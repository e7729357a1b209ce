package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campusbridge/portal-api/internal/models"
)

type dashboardGateway interface {
	StudentDashboard(ctx context.Context, token string) (*models.StudentDashboard, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService proxies the student dashboard with short-lived caching.
type DashboardService struct {
	gateway dashboardGateway
	cache   *CacheService
	logger  *zap.Logger
	cfg     DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(gateway dashboardGateway, cache *CacheService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &DashboardService{gateway: gateway, cache: cache, logger: logger, cfg: cfg}
}

// Student returns the caller's dashboard. The boolean reports a cache hit.
func (s *DashboardService) Student(ctx context.Context, token string) (*models.StudentDashboard, bool, error) {
	key := dashboardCacheKey(token)
	var cached models.StudentDashboard
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	dashboard, err := s.gateway.StudentDashboard(ctx, token)
	if err != nil {
		return nil, false, err
	}

	_ = s.cache.Set(ctx, key, dashboard, s.cfg.CacheTTL)
	return dashboard, false, nil
}

// dashboardCacheKey scopes the cached dashboard to one caller without
// storing the raw token in redis.
func dashboardCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("dashboard:student:%s", hex.EncodeToString(sum[:8]))
}
