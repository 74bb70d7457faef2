package models

import (
	"context"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

const reviewSelect = `SELECT r.id, r.title_id, r.author_id, u.username AS author, r.text, r.score, r.pub_date`

type ReviewModel struct {
	DB postgres.DBTX
}

func (m *ReviewModel) collectOne(rows pgx.Rows, err error) (*models.Review, error) {
	if err != nil {
		return nil, mapError(err)
	}
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, mapError(err)
	}
	return &review, nil
}

func (m *ReviewModel) Get(ctx context.Context, id int64) (*models.Review, error) {
	return m.collectOne(m.DB.Query(
		ctx,
		reviewSelect+` FROM reviews r JOIN users u ON u.id = r.author_id WHERE r.id = $1`,
		id,
	))
}

func (m *ReviewModel) ListForTitle(ctx context.Context, titleID int64) ([]models.Review, error) {
	rows, err := m.DB.Query(
		ctx,
		reviewSelect+` FROM reviews r JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1 ORDER BY r.pub_date, r.id`,
		titleID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, mapError(err)
	}
	return reviews, nil
}

func (m *ReviewModel) ExistsForAuthor(ctx context.Context, titleID, authorID int64) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM reviews WHERE title_id = $1 AND author_id = $2)",
		titleID,
		authorID,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

// Insert relies on reviews_author_title_unique; a duplicate surfaces as
// storage.ErrConflict.
func (m *ReviewModel) Insert(ctx context.Context, review *models.Review) (*models.Review, error) {
	return m.collectOne(m.DB.Query(
		ctx,
		`WITH r AS (
			INSERT INTO reviews (title_id, author_id, text, score) VALUES ($1, $2, $3, $4) RETURNING *
		)
		`+reviewSelect+` FROM r JOIN users u ON u.id = r.author_id`,
		review.TitleID,
		review.AuthorID,
		review.Text,
		review.Score,
	))
}

// Update never touches pub_date, author or title.
func (m *ReviewModel) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	return m.collectOne(m.DB.Query(
		ctx,
		`WITH r AS (
			UPDATE reviews SET text = $1, score = $2 WHERE id = $3 RETURNING *
		)
		`+reviewSelect+` FROM r JOIN users u ON u.id = r.author_id`,
		review.Text,
		review.Score,
		review.ID,
	))
}

func (m *ReviewModel) Delete(ctx context.Context, id int64) error {
	return deleteByID(m.DB.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id))
}

// Scores returns every review score grouped by title id.
func (m *ReviewModel) Scores(ctx context.Context, titleIDs []int64) (map[int64][]int, error) {
	scores := make(map[int64][]int, len(titleIDs))
	if len(titleIDs) == 0 {
		return scores, nil
	}
	rows, err := m.DB.Query(ctx, "SELECT title_id, score FROM reviews WHERE title_id = ANY($1)", titleIDs)
	if err != nil {
		return nil, mapError(err)
	}
	var (
		titleID int64
		score   int
	)
	_, err = pgx.ForEachRow(rows, []any{&titleID, &score}, func() error {
		scores[titleID] = append(scores[titleID], score)
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return scores, nil
}
