package upstream

import (
	"context"

	"github.com/campusbridge/portal-api/internal/models"
)

// StudentDashboard fetches the student's enrollments and summary.
func (c *Client) StudentDashboard(ctx context.Context, token string) (*models.StudentDashboard, error) {
	var dashboard models.StudentDashboard
	if err := c.get(ctx, token, "/students/dashboard/", &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}
