package models

import (
	"context"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

// TermModel serves both genres and categories; Table is never user input.
type TermModel struct {
	DB    postgres.DBTX
	Table string
}

func (m *TermModel) List(ctx context.Context) ([]models.Term, error) {
	rows, err := m.DB.Query(ctx, "SELECT id, name, slug FROM "+m.Table+" ORDER BY name, id")
	if err != nil {
		return nil, mapError(err)
	}
	terms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Term])
	if err != nil {
		return nil, mapError(err)
	}
	return terms, nil
}

func (m *TermModel) GetBySlug(ctx context.Context, slug string) (*models.Term, error) {
	rows, err := m.DB.Query(ctx, "SELECT id, name, slug FROM "+m.Table+" WHERE slug = $1", slug)
	if err != nil {
		return nil, mapError(err)
	}
	term, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Term])
	if err != nil {
		return nil, mapError(err)
	}
	return &term, nil
}

// GetBySlugs returns the terms that exist among slugs, in name order.
func (m *TermModel) GetBySlugs(ctx context.Context, slugs []string) ([]models.Term, error) {
	rows, err := m.DB.Query(ctx, "SELECT id, name, slug FROM "+m.Table+" WHERE slug = ANY($1) ORDER BY name, id", slugs)
	if err != nil {
		return nil, mapError(err)
	}
	terms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Term])
	if err != nil {
		return nil, mapError(err)
	}
	return terms, nil
}

func (m *TermModel) Insert(ctx context.Context, name, slug string) (*models.Term, error) {
	rows, err := m.DB.Query(ctx, "INSERT INTO "+m.Table+" (name, slug) VALUES ($1, $2) RETURNING id, name, slug", name, slug)
	if err != nil {
		return nil, mapError(err)
	}
	term, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Term])
	if err != nil {
		return nil, mapError(err)
	}
	return &term, nil
}

func (m *TermModel) Update(ctx context.Context, term *models.Term) (*models.Term, error) {
	rows, err := m.DB.Query(
		ctx,
		"UPDATE "+m.Table+" SET name = $1, slug = $2 WHERE id = $3 RETURNING id, name, slug",
		term.Name,
		term.Slug,
		term.ID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Term])
	if err != nil {
		return nil, mapError(err)
	}
	return &updated, nil
}

func (m *TermModel) Delete(ctx context.Context, slug string) error {
	return deleteByID(m.DB.Exec(ctx, "DELETE FROM "+m.Table+" WHERE slug = $1", slug))
}
