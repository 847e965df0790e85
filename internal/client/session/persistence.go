package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/clubportal/internal/common"
	"github.com/dmitrijs2005/clubportal/internal/dbx"
)

// Persistence stores the reference of the signed-in user across restarts.
// Get returns "" when nothing is stored.
type Persistence interface {
	Get(ctx context.Context) (models.ID, error)
	Set(ctx context.Context, id models.ID) error
	Clear(ctx context.Context) error
}

// RepositoryPersistence keeps the reference and the sign-in time under
// metadata keys of repo.
type RepositoryPersistence struct {
	repo metadata.Repository
	now  func() time.Time
}

func NewRepositoryPersistence(repo metadata.Repository) *RepositoryPersistence {
	return &RepositoryPersistence{repo: repo, now: time.Now}
}

func (p *RepositoryPersistence) Get(ctx context.Context) (models.ID, error) {
	v, err := p.repo.Get(ctx, common.IdentityRefKey)
	if err != nil {
		return "", err
	}
	return models.ID(v), nil
}

func (p *RepositoryPersistence) Set(ctx context.Context, id models.ID) error {
	if err := p.repo.Set(ctx, common.IdentityRefKey, []byte(id)); err != nil {
		return err
	}
	ts := p.now().UTC().Format(time.RFC3339)
	if err := p.repo.Set(ctx, common.LastSignInKey, []byte(ts)); err != nil {
		return fmt.Errorf("record sign-in time: %w", err)
	}
	return nil
}

func (p *RepositoryPersistence) Clear(ctx context.Context) error {
	if err := p.repo.Delete(ctx, common.IdentityRefKey); err != nil {
		return err
	}
	return p.repo.Delete(ctx, common.LastSignInKey)
}

// SQLitePersistence runs each RepositoryPersistence write in one
// transaction, so the reference and the sign-in time change together.
type SQLitePersistence struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLitePersistence(db *sql.DB) *SQLitePersistence {
	return &SQLitePersistence{db: db, now: time.Now}
}

func (p *SQLitePersistence) over(q dbx.DBTX) *RepositoryPersistence {
	return &RepositoryPersistence{repo: metadata.NewSQLiteRepository(q), now: p.now}
}

func (p *SQLitePersistence) Get(ctx context.Context) (models.ID, error) {
	return p.over(p.db).Get(ctx)
}

func (p *SQLitePersistence) Set(ctx context.Context, id models.ID) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return p.over(tx).Set(ctx, id)
	})
}

func (p *SQLitePersistence) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return p.over(tx).Clear(ctx)
	})
}
