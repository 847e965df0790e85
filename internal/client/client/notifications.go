package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
)

func (c *HTTPClient) Notifications(ctx context.Context, userID models.ID) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.doJSON(ctx, "notifications", http.MethodGet, "/notifications/"+seg(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SendNotification(ctx context.Context, in models.NotificationInput) error {
	return c.doJSON(ctx, "send notification", http.MethodPost, "/notifications", in, nil)
}

func (c *HTTPClient) DeleteNotification(ctx context.Context, receiverID, id models.ID) error {
	return c.doJSON(ctx, "delete notification", http.MethodDelete, "/notifications/"+seg(receiverID)+"/"+seg(id), nil, nil)
}

func (c *HTTPClient) SenderName(ctx context.Context, senderID models.ID) (string, error) {
	var out models.Sender
	if err := c.doJSON(ctx, "sender name", http.MethodGet, "/notifications/sender/"+seg(senderID), nil, &out); err != nil {
		return "", err
	}
	return out.Name, nil
}
