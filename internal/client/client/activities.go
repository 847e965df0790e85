package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
)

func (c *HTTPClient) listActivities(ctx context.Context, op, path string) ([]models.Activity, error) {
	var out []models.Activity
	if err := c.doJSON(ctx, op, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListActivities(ctx context.Context) ([]models.Activity, error) {
	return c.listActivities(ctx, "list activities", "/activities")
}

func (c *HTTPClient) RecentActivities(ctx context.Context) ([]models.Activity, error) {
	return c.listActivities(ctx, "recent activities", "/activities/recent")
}

func (c *HTTPClient) ArchivedActivities(ctx context.Context) ([]models.Activity, error) {
	return c.listActivities(ctx, "archived activities", "/archive/activities")
}

func (c *HTTPClient) GetActivity(ctx context.Context, id models.ID) (models.Activity, error) {
	var out models.Activity
	if err := c.doJSON(ctx, "get activity", http.MethodGet, "/activities/"+seg(id), nil, &out); err != nil {
		return models.Activity{}, err
	}
	return out, nil
}

func (c *HTTPClient) CreateActivity(ctx context.Context, in models.ActivityInput) (models.Activity, error) {
	var out models.Activity
	if err := c.doForm(ctx, "create activity", http.MethodPost, "/activities", in.Fields(), nil, &out); err != nil {
		return models.Activity{}, err
	}
	return out, nil
}

// UpdateActivity returns no record; callers refetch the list.
func (c *HTTPClient) UpdateActivity(ctx context.Context, id models.ID, in models.ActivityInput) error {
	return c.doForm(ctx, "update activity", http.MethodPost, "/activities/"+seg(id), in.Fields(), nil, nil)
}

func (c *HTTPClient) DeleteActivity(ctx context.Context, id models.ID) error {
	return c.doJSON(ctx, "delete activity", http.MethodDelete, "/activities/"+seg(id), nil, nil)
}
