package models

import (
	"context"
	"errors"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
	"yamdb/proj/internal/storage/postgres"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type TitleModel struct {
	DB postgres.DBTX
}

func (m *TitleModel) selectTitles() sq.SelectBuilder {
	return psql.
		Select("t.id", "t.name", "t.year", "t.description", "c.id", "c.name", "c.slug").
		From("titles t").
		LeftJoin("categories c ON c.id = t.category_id")
}

func scanTitle(row pgx.CollectableRow) (models.Title, error) {
	var (
		t       models.Title
		catID   *int64
		catName *string
		catSlug *string
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Year, &t.Description, &catID, &catName, &catSlug); err != nil {
		return t, err
	}
	if catID != nil {
		t.Category = &models.Category{ID: *catID, Name: *catName, Slug: *catSlug}
	}
	t.Genres = []models.Genre{}
	return t, nil
}

func (m *TitleModel) Get(ctx context.Context, id int64) (*models.Title, error) {
	query, args, err := m.selectTitles().Where(sq.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := m.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	title, err := pgx.CollectOneRow(rows, scanTitle)
	if err != nil {
		return nil, mapError(err)
	}
	titles := []models.Title{title}
	if err := m.attachGenres(ctx, titles); err != nil {
		return nil, err
	}
	return &titles[0], nil
}

func (m *TitleModel) List(ctx context.Context, f filters.TitleFilters) ([]models.Title, error) {
	qb := m.selectTitles().OrderBy("t.id")
	if f.Category != "" {
		qb = qb.Where(sq.Eq{"c.slug": f.Category})
	}
	if f.Genre != "" {
		qb = qb.Where(
			`EXISTS (SELECT 1 FROM title_genres tg JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = ?)`,
			f.Genre,
		)
	}
	if f.Year != 0 {
		qb = qb.Where(sq.Eq{"t.year": f.Year})
	}
	if f.Name != "" {
		qb = qb.Where(sq.ILike{"t.name": "%" + f.Name + "%"})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := m.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	titles, err := pgx.CollectRows(rows, scanTitle)
	if err != nil {
		return nil, mapError(err)
	}
	if err := m.attachGenres(ctx, titles); err != nil {
		return nil, err
	}
	return titles, nil
}

func (m *TitleModel) attachGenres(ctx context.Context, titles []models.Title) error {
	if len(titles) == 0 {
		return nil
	}
	ids := make([]int64, len(titles))
	index := make(map[int64]int, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
		index[t.ID] = i
	}
	rows, err := m.DB.Query(
		ctx,
		`SELECT tg.title_id, g.id, g.name, g.slug FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1) ORDER BY g.name, g.id`,
		ids,
	)
	if err != nil {
		return mapError(err)
	}
	var (
		titleID int64
		genre   models.Genre
	)
	_, err = pgx.ForEachRow(rows, []any{&titleID, &genre.ID, &genre.Name, &genre.Slug}, func() error {
		i := index[titleID]
		titles[i].Genres = append(titles[i].Genres, genre)
		return nil
	})
	return mapError(err)
}

// Insert stores the title and its genre links; genres and category must
// already carry their ids.
func (m *TitleModel) Insert(ctx context.Context, title *models.Title) (*models.Title, error) {
	query, args, err := psql.
		Insert("titles").
		Columns("name", "year", "description", "category_id").
		Values(title.Name, title.Year, title.Description, categoryID(title)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var id int64
	err = withTx(ctx, m.DB, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			return referenceError(mapError(err), "category_id")
		}
		return linkGenres(ctx, tx, id, title.Genres)
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, id)
}

// Update overwrites scalar columns and replaces the genre links.
func (m *TitleModel) Update(ctx context.Context, title *models.Title) (*models.Title, error) {
	query, args, err := psql.
		Update("titles").
		Set("name", title.Name).
		Set("year", title.Year).
		Set("description", title.Description).
		Set("category_id", categoryID(title)).
		Where(sq.Eq{"id": title.ID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	err = withTx(ctx, m.DB, func(tx pgx.Tx) error {
		status, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return referenceError(mapError(err), "category_id")
		}
		if status.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		if _, err := tx.Exec(ctx, "DELETE FROM title_genres WHERE title_id = $1", title.ID); err != nil {
			return mapError(err)
		}
		return linkGenres(ctx, tx, title.ID, title.Genres)
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, title.ID)
}

func (m *TitleModel) Delete(ctx context.Context, id int64) error {
	return deleteByID(m.DB.Exec(ctx, "DELETE FROM titles WHERE id = $1", id))
}

func linkGenres(ctx context.Context, tx pgx.Tx, titleID int64, genres []models.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	qb := psql.Insert("title_genres").Columns("title_id", "genre_id")
	for _, g := range genres {
		qb = qb.Values(titleID, g.ID)
	}
	query, args, err := qb.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, query, args...)
	return referenceError(mapError(err), "genre_id")
}

// referenceError attaches the column to a foreign key violation.
func referenceError(err error, column string) error {
	if errors.Is(err, storage.ErrInvalidReference) {
		return &storage.ReferenceError{Column: column}
	}
	return err
}

func categoryID(title *models.Title) *int64 {
	if title.Category == nil {
		return nil
	}
	return &title.Category.ID
}
