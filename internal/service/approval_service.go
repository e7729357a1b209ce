package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusbridge/portal-api/internal/models"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
)

type approvalGateway interface {
	PendingApprovals(ctx context.Context, token string, kind models.ApprovalKind) ([]models.ApprovalRequest, error)
	ListApprovals(ctx context.Context, token string, kind models.ApprovalKind, status models.ApprovalStatus) ([]models.ApprovalRequest, error)
	ApproveRequest(ctx context.Context, token string, kind models.ApprovalKind, id int) error
	RejectRequest(ctx context.Context, token string, kind models.ApprovalKind, id int, reason string) error
}

// ApprovalServiceConfig tunes approval workflow behaviour.
type ApprovalServiceConfig struct {
	PendingTTL time.Duration
}

// ApprovalService drives the pending -> {approved, rejected} transition for
// every approvable entity kind behind one uniform contract. The backend owns
// the entities; this service owns the pending working set semantics: the
// list is replaced wholesale on fetch and an id is pruned only after the
// backend confirms the decision.
type ApprovalService struct {
	gateway   approvalGateway
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ApprovalServiceConfig

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewApprovalService constructs an ApprovalService.
func NewApprovalService(gateway approvalGateway, cache *CacheService, validate *validator.Validate, logger *zap.Logger, cfg ApprovalServiceConfig) *ApprovalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = 30 * time.Second
	}
	return &ApprovalService{
		gateway:   gateway,
		cache:     cache,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		inflight:  make(map[string]struct{}),
	}
}

// Pending returns the backend's pending list for the kind, replacing any
// previously cached working set. An empty list is a valid caught-up state.
// The second return reports whether the cache served the list.
func (s *ApprovalService) Pending(ctx context.Context, token string, kind models.ApprovalKind) ([]models.ApprovalRequest, bool, error) {
	if !kind.Valid() {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown approval kind %q", kind))
	}

	key := pendingCacheKey(kind, token)
	var cached []models.ApprovalRequest
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, true, nil
	}

	requests, err := s.gateway.PendingApprovals(ctx, token, kind)
	if err != nil {
		return nil, false, err
	}
	if requests == nil {
		requests = []models.ApprovalRequest{}
	}

	_ = s.cache.Set(ctx, key, requests, s.cfg.PendingTTL)
	return requests, false, nil
}

// List returns requests of the kind, optionally filtered by status, so
// terminal outcomes stay observable after a decision.
func (s *ApprovalService) List(ctx context.Context, token string, kind models.ApprovalKind, status models.ApprovalStatus) ([]models.ApprovalRequest, error) {
	if !kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown approval kind %q", kind))
	}
	if status != "" && !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", status))
	}
	requests, err := s.gateway.ListApprovals(ctx, token, kind, status)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.ApprovalRequest{}
	}
	return requests, nil
}

// Decide applies an approve or reject decision. Rejection requires a
// non-empty reason before any network call is made. There is no optimistic
// mutation: the cached pending set is pruned only after the backend
// confirms, so a failed decision leaves the working set unchanged.
func (s *ApprovalService) Decide(ctx context.Context, token string, kind models.ApprovalKind, id int, decision models.Decision, reason string) error {
	if !kind.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown approval kind %q", kind))
	}

	switch decision {
	case models.DecisionApprove:
	case models.DecisionReject:
		if err := s.validator.Var(strings.TrimSpace(reason), "required"); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "rejection reason is required")
		}
	default:
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown decision %q", decision))
	}

	if !s.acquire(kind, id) {
		return appErrors.Clone(appErrors.ErrConflict, "a decision for this request is already in progress")
	}
	defer s.release(kind, id)

	var err error
	if decision == models.DecisionApprove {
		err = s.gateway.ApproveRequest(ctx, token, kind, id)
	} else {
		err = s.gateway.RejectRequest(ctx, token, kind, id, reason)
	}
	if err != nil {
		s.logger.Warn("approval decision failed",
			zap.String("kind", string(kind)),
			zap.Int("id", id),
			zap.String("decision", string(decision)),
			zap.Error(err))
		return err
	}

	s.pruneCached(ctx, token, kind, id)
	s.logger.Info("approval decision applied",
		zap.String("kind", string(kind)),
		zap.Int("id", id),
		zap.String("decision", string(decision)))
	return nil
}

// acquire registers an in-flight decision for (kind, id). Decisions for
// different ids proceed independently; a duplicate for the same id is
// refused instead of queued.
func (s *ApprovalService) acquire(kind models.ApprovalKind, id int) bool {
	key := fmt.Sprintf("%s/%d", kind, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *ApprovalService) release(kind models.ApprovalKind, id int) {
	key := fmt.Sprintf("%s/%d", kind, id)
	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()
}

// pruneCached removes the decided id from the caller's cached pending list.
func (s *ApprovalService) pruneCached(ctx context.Context, token string, kind models.ApprovalKind, id int) {
	if !s.cache.Enabled() {
		return
	}
	key := pendingCacheKey(kind, token)
	var cached []models.ApprovalRequest
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil || !hit {
		return
	}
	pruned := cached[:0]
	for _, req := range cached {
		if req.ID != id {
			pruned = append(pruned, req)
		}
	}
	_ = s.cache.Set(ctx, key, pruned, s.cfg.PendingTTL)
}

// pendingCacheKey scopes the cached pending list to one caller without
// storing the raw token in redis.
func pendingCacheKey(kind models.ApprovalKind, token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("approvals:pending:%s:%s", kind, hex.EncodeToString(sum[:8]))
}
