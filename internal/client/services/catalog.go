package services

import (
	"context"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/logging"
)

// Catalog is the public listing shown to guests and students.
type Catalog struct {
	Clubs      []models.Club
	Activities []models.Activity
}

type CatalogReader interface {
	ListClubs(ctx context.Context) ([]models.Club, error)
	ListActivities(ctx context.Context) ([]models.Activity, error)
	GetClub(ctx context.Context, id models.ID) (models.Club, error)
	GetActivity(ctx context.Context, id models.ID) (models.Activity, error)
}

type CatalogService interface {
	// Catalog never fails; unreachable listings come back empty.
	Catalog(ctx context.Context) Catalog
	Club(ctx context.Context, id models.ID) (models.Club, error)
	Activity(ctx context.Context, id models.ID) (models.Activity, error)
}

type catalogService struct {
	gw  CatalogReader
	log logging.Logger
}

func NewCatalogService(gw CatalogReader, log logging.Logger) CatalogService {
	if log == nil {
		log = logging.Nop()
	}
	return &catalogService{gw: gw, log: log}
}

func (s *catalogService) Catalog(ctx context.Context) Catalog {
	clubs, err := s.gw.ListClubs(ctx)
	c := Catalog{Clubs: orEmpty(ctx, s.log, "clubs", clubs, err)}
	acts, err := s.gw.ListActivities(ctx)
	c.Activities = orEmpty(ctx, s.log, "activities", acts, err)
	return c
}

func (s *catalogService) Club(ctx context.Context, id models.ID) (models.Club, error) {
	return s.gw.GetClub(ctx, id)
}

func (s *catalogService) Activity(ctx context.Context, id models.ID) (models.Activity, error) {
	return s.gw.GetActivity(ctx, id)
}
