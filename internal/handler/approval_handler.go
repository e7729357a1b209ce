package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusbridge/portal-api/internal/middleware"
	"github.com/campusbridge/portal-api/internal/models"
	"github.com/campusbridge/portal-api/internal/service"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
	"github.com/campusbridge/portal-api/pkg/response"
)

// ApprovalHandler exposes the uniform approval workflow endpoints.
type ApprovalHandler struct {
	approvals *service.ApprovalService
}

// NewApprovalHandler constructs ApprovalHandler.
func NewApprovalHandler(approvals *service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvals: approvals}
}

// Pending godoc
// @Summary List pending requests for an approval workflow
// @Tags Approvals
// @Produce json
// @Param kind path string true "Workflow kind"
// @Success 200 {object} response.Envelope
// @Router /approvals/{kind}/pending [get]
func (h *ApprovalHandler) Pending(c *gin.Context) {
	kind := models.ApprovalKind(c.Param("kind"))
	requests, cacheHit, err := h.approvals.Pending(c.Request.Context(), tokenFromContext(c), kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, requests, middleware.ExtractMeta(c))
}

// List godoc
// @Summary List requests for an approval workflow, optionally by status
// @Tags Approvals
// @Produce json
// @Param kind path string true "Workflow kind"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /approvals/{kind} [get]
func (h *ApprovalHandler) List(c *gin.Context) {
	kind := models.ApprovalKind(c.Param("kind"))
	status := models.ApprovalStatus(c.Query("status"))
	requests, err := h.approvals.List(c.Request.Context(), tokenFromContext(c), kind, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests)
}

// Approve godoc
// @Summary Approve a pending request
// @Tags Approvals
// @Produce json
// @Param kind path string true "Workflow kind"
// @Param id path int true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /approvals/{kind}/{id}/approve [post]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	h.decide(c, models.DecisionApprove)
}

// Reject godoc
// @Summary Reject a pending request with a reason
// @Tags Approvals
// @Accept json
// @Produce json
// @Param kind path string true "Workflow kind"
// @Param id path int true "Request ID"
// @Param payload body models.RejectPayload true "Rejection reason"
// @Success 200 {object} response.Envelope
// @Router /approvals/{kind}/{id}/reject [post]
func (h *ApprovalHandler) Reject(c *gin.Context) {
	h.decide(c, models.DecisionReject)
}

func (h *ApprovalHandler) decide(c *gin.Context, decision models.Decision) {
	kind := models.ApprovalKind(c.Param("kind"))
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request id"))
		return
	}

	var reason string
	if decision == models.DecisionReject {
		var payload models.RejectPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
		reason = payload.Reason
	}

	if err := h.approvals.Decide(c.Request.Context(), tokenFromContext(c), kind, id, decision, reason); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id, "decision": decision})
}
