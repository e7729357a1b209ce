package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/campusbridge/portal-api/internal/models"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
)

// approvalEndpoints groups the backend paths for one approval workflow.
type approvalEndpoints struct {
	pending string
	list    string
	approve string // fmt pattern with one %d
	reject  string // fmt pattern with one %d
}

var approvalRoutes = map[models.ApprovalKind]approvalEndpoints{
	models.KindTeacherApplication: {
		pending: "/users/admin/pending-teachers/",
		list:    "/users/admin/teacher-applications/",
		approve: "/users/admin/approve-teacher/%d/",
		reject:  "/users/admin/reject-teacher/%d/",
	},
	models.KindStudentApplication: {
		pending: "/users/admin/pending-students/",
		list:    "/users/admin/student-applications/",
		approve: "/users/admin/approve-student/%d/",
		reject:  "/users/admin/reject-student/%d/",
	},
	models.KindSubjectRequest: {
		pending: "/teachers/admin/subject-requests/pending/",
		list:    "/teachers/admin/subject-requests/",
		approve: "/teachers/admin/subject-requests/%d/approve/",
		reject:  "/teachers/admin/subject-requests/%d/reject/",
	},
	models.KindEnrollmentRequest: {
		pending: "/teachers/enrollment-requests/pending/",
		list:    "/teachers/enrollment-requests/",
		approve: "/teachers/enrollment-requests/%d/approve/",
		reject:  "/teachers/enrollment-requests/%d/reject/",
	},
}

func routesFor(kind models.ApprovalKind) (approvalEndpoints, error) {
	routes, ok := approvalRoutes[kind]
	if !ok {
		return approvalEndpoints{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown approval kind %q", kind))
	}
	return routes, nil
}

// PendingApprovals fetches the backend's pending list for the given kind.
func (c *Client) PendingApprovals(ctx context.Context, token string, kind models.ApprovalKind) ([]models.ApprovalRequest, error) {
	routes, err := routesFor(kind)
	if err != nil {
		return nil, err
	}
	var requests []models.ApprovalRequest
	if err := c.get(ctx, token, routes.pending, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ListApprovals fetches all requests of the given kind, optionally filtered
// by status.
func (c *Client) ListApprovals(ctx context.Context, token string, kind models.ApprovalKind, status models.ApprovalStatus) ([]models.ApprovalRequest, error) {
	routes, err := routesFor(kind)
	if err != nil {
		return nil, err
	}
	path := routes.list
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var requests []models.ApprovalRequest
	if err := c.get(ctx, token, path, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ApproveRequest marks the request approved on the backend.
func (c *Client) ApproveRequest(ctx context.Context, token string, kind models.ApprovalKind, id int) error {
	routes, err := routesFor(kind)
	if err != nil {
		return err
	}
	return c.postJSON(ctx, token, fmt.Sprintf(routes.approve, id), nil, nil)
}

// RejectRequest marks the request rejected on the backend with the reason.
func (c *Client) RejectRequest(ctx context.Context, token string, kind models.ApprovalKind, id int, reason string) error {
	routes, err := routesFor(kind)
	if err != nil {
		return err
	}
	payload := models.RejectPayload{Reason: reason}
	return c.postJSON(ctx, token, fmt.Sprintf(routes.reject, id), payload, nil)
}
