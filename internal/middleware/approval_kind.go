package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campusbridge/portal-api/internal/models"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
	"github.com/campusbridge/portal-api/pkg/response"
)

// AllowApprovalKinds restricts an approval route group to the given workflow
// kinds. Requests for any other kind are rejected before reaching the handler.
func AllowApprovalKinds(kinds ...models.ApprovalKind) gin.HandlerFunc {
	allowed := make(map[models.ApprovalKind]struct{}, len(kinds))
	for _, kind := range kinds {
		allowed[kind] = struct{}{}
	}
	return func(c *gin.Context) {
		kind := models.ApprovalKind(c.Param("kind"))
		if _, ok := allowed[kind]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown approval workflow"))
			c.Abort()
			return
		}
		c.Next()
	}
}
