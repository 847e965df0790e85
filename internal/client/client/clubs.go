package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
)

func (c *HTTPClient) ListClubs(ctx context.Context) ([]models.Club, error) {
	var out []models.Club
	if err := c.doJSON(ctx, "list clubs", http.MethodGet, "/clubs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetClub(ctx context.Context, id models.ID) (models.Club, error) {
	var out models.Club
	if err := c.doJSON(ctx, "get club", http.MethodGet, "/clubs/"+seg(id), nil, &out); err != nil {
		return models.Club{}, err
	}
	return out, nil
}

func (c *HTTPClient) CreateClub(ctx context.Context, in models.ClubInput) (models.Club, error) {
	var out models.Club
	if err := c.doForm(ctx, "create club", http.MethodPost, "/clubs", in.Fields(), nil, &out); err != nil {
		return models.Club{}, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateClub(ctx context.Context, id models.ID, in models.ClubInput) (models.Club, error) {
	var out models.Club
	if err := c.doForm(ctx, "update club", http.MethodPost, "/clubs/"+seg(id), in.Fields(), nil, &out); err != nil {
		return models.Club{}, err
	}
	return out, nil
}

func (c *HTTPClient) TransferClub(ctx context.Context, id, managerID models.ID) error {
	return c.doJSON(ctx, "transfer club", http.MethodPut, "/clubs/"+seg(id)+"/"+seg(managerID), nil, nil)
}

func (c *HTTPClient) DeleteClub(ctx context.Context, id models.ID) error {
	return c.doJSON(ctx, "delete club", http.MethodDelete, "/clubs/"+seg(id), nil, nil)
}

func (c *HTTPClient) ManagedClub(ctx context.Context, managerID models.ID) (models.ManagedClubRef, error) {
	var out models.ManagedClubRef
	if err := c.doJSON(ctx, "managed club", http.MethodGet, "/clubs/manager/"+seg(managerID), nil, &out); err != nil {
		return models.ManagedClubRef{}, err
	}
	if out.ID == "" {
		return models.ManagedClubRef{}, &Error{Op: "managed club", Kind: KindRejected, Status: http.StatusNotFound, Message: "no managed club"}
	}
	return out, nil
}
