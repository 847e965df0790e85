package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
)

func (c *HTTPClient) AwardBadge(ctx context.Context, studentID models.ID, badge models.BadgeBrief) error {
	in := models.BadgeAward{StudentID: studentID, Data: badge}
	return c.doJSON(ctx, "award badge", http.MethodPost, "/badges/add", in, nil)
}

func (c *HTTPClient) Badges(ctx context.Context, userID models.ID) ([]models.Badge, error) {
	var out []models.Badge
	in := map[string]models.ID{"userId": userID}
	if err := c.doJSON(ctx, "badges", http.MethodPost, "/badges/id", in, &out); err != nil {
		return nil, err
	}
	return out, nil
}
