package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
)

type registrationKey struct {
	StudentID models.ID     `json:"studentId"`
	ClubID    models.ID     `json:"clubId"`
	Status    models.Status `json:"status,omitempty"`
}

func (c *HTTPClient) listRegistrations(ctx context.Context, op, path string) ([]models.Registration, error) {
	var out []models.Registration
	if err := c.doJSON(ctx, op, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ClubRegistrations(ctx context.Context, clubID models.ID) ([]models.Registration, error) {
	return c.listRegistrations(ctx, "club registrations", "/registrations/club/"+seg(clubID))
}

func (c *HTTPClient) AllRegistrations(ctx context.Context) ([]models.Registration, error) {
	return c.listRegistrations(ctx, "all registrations", "/registrations/club")
}

func (c *HTTPClient) StudentRegistrations(ctx context.Context, studentID models.ID) ([]models.Registration, error) {
	return c.listRegistrations(ctx, "student registrations", "/registrations/student/"+seg(studentID))
}

func (c *HTTPClient) CreateRegistration(ctx context.Context, studentID, clubID models.ID) (models.Registration, error) {
	var out models.Registration
	in := registrationKey{StudentID: studentID, ClubID: clubID}
	if err := c.doJSON(ctx, "create registration", http.MethodPost, "/registrations", in, &out); err != nil {
		return models.Registration{}, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateRegistrationStatus(ctx context.Context, studentID, clubID models.ID, status models.Status) error {
	in := registrationKey{StudentID: studentID, ClubID: clubID, Status: status}
	return c.doJSON(ctx, "update registration", http.MethodPut, "/registrations", in, nil)
}

func (c *HTTPClient) DeleteRegistration(ctx context.Context, studentID, clubID models.ID) error {
	in := registrationKey{StudentID: studentID, ClubID: clubID}
	return c.doJSON(ctx, "delete registration", http.MethodDelete, "/registrations", in, nil)
}
