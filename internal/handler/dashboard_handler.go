package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbridge/portal-api/internal/middleware"
	"github.com/campusbridge/portal-api/internal/service"
	"github.com/campusbridge/portal-api/pkg/response"
)

// DashboardHandler serves the student portal dashboard.
type DashboardHandler struct {
	dashboards *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Student godoc
// @Summary Get the student dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/dashboard [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	dashboard, cacheHit, err := h.dashboards.Student(c.Request.Context(), tokenFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, dashboard, middleware.ExtractMeta(c))
}
