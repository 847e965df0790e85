package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/netx"
)

func seg(id models.ID) string { return url.PathEscape(id.String()) }

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.Identity, error) {
	var out models.Identity
	in := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, "login", http.MethodPost, "/users/login", in, &out); err != nil {
		return models.Identity{}, err
	}
	if err := out.Validate(); err != nil {
		return models.Identity{}, &Error{Op: "login", Kind: KindMalformed, Status: http.StatusOK, Err: err}
	}
	return out, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (models.Identity, error) {
	var out models.Identity
	in := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doJSON(ctx, "register", http.MethodPost, "/users/register", in, &out); err != nil {
		return models.Identity{}, err
	}
	if err := out.Validate(); err != nil {
		return models.Identity{}, &Error{Op: "register", Kind: KindMalformed, Status: http.StatusOK, Err: err}
	}
	return out, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id models.ID) (models.Identity, error) {
	var out models.Identity
	if err := c.doJSON(ctx, "get user", http.MethodGet, "/users/"+seg(id), nil, &out); err != nil {
		return models.Identity{}, err
	}
	if err := out.Validate(); err != nil {
		return models.Identity{}, &Error{Op: "get user", Kind: KindMalformed, Status: http.StatusOK, Err: err}
	}
	return out, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.doJSON(ctx, "list users", http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, id models.ID, in models.ProfileInput) error {
	body := struct {
		ID models.ID `json:"id"`
		models.ProfileInput
	}{id, in}
	return c.doJSON(ctx, "update profile", http.MethodPost, "/users/update", body, nil)
}

// UpdateAvatar uploads a new avatar and returns the stored reference. The
// reference is empty when the server does not echo it back.
func (c *HTTPClient) UpdateAvatar(ctx context.Context, id models.ID, file netx.FilePart) (string, error) {
	if file.Field == "" {
		file.Field = "avatar"
	}
	var out struct {
		Avatar string `json:"avatar"`
	}
	fields := map[string]string{"userId": id.String()}
	if err := c.doForm(ctx, "update avatar", http.MethodPost, "/users/avatar", fields, &file, &out); err != nil {
		return "", err
	}
	return out.Avatar, nil
}
