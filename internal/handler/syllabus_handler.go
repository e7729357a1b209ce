package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbridge/portal-api/internal/service"
	"github.com/campusbridge/portal-api/internal/syllabus"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
	"github.com/campusbridge/portal-api/pkg/response"
)

// SyllabusHandler serves the static course syllabus catalog and its exports.
type SyllabusHandler struct {
	catalog *syllabus.Catalog
	exports *service.ExportService
}

// NewSyllabusHandler constructs SyllabusHandler.
func NewSyllabusHandler(catalog *syllabus.Catalog, exports *service.ExportService) *SyllabusHandler {
	return &SyllabusHandler{catalog: catalog, exports: exports}
}

// Codes godoc
// @Summary List course codes with a catalog entry
// @Tags Syllabus
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /syllabus [get]
func (h *SyllabusHandler) Codes(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog.Codes())
}

// Course godoc
// @Summary Get the syllabus for a course code
// @Tags Syllabus
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} response.Envelope
// @Router /syllabus/{code} [get]
func (h *SyllabusHandler) Course(c *gin.Context) {
	code := c.Param("code")
	course, ok := h.catalog.Lookup(code)
	if ok {
		response.JSON(c, http.StatusOK, course)
		return
	}
	// Unknown codes still get a browsable outline.
	response.JSON(c, http.StatusOK, gin.H{
		"code":  code,
		"units": h.catalog.Units(code),
	})
}

// Units godoc
// @Summary Get the unit outline for a course code
// @Tags Syllabus
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} response.Envelope
// @Router /syllabus/{code}/units [get]
func (h *SyllabusHandler) Units(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog.Units(c.Param("code")))
}

// Export godoc
// @Summary Export a course syllabus as CSV or PDF
// @Tags Syllabus
// @Produce text/csv
// @Produce application/pdf
// @Param code path string true "Course code"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Router /admin/syllabus/{code}/export [get]
func (h *SyllabusHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "exports are disabled"))
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	content, filename, contentType, err := h.exports.Render(c.Param("code"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, content)
}
