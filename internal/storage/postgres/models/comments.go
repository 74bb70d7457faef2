package models

import (
	"context"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

const commentSelect = `SELECT c.id, c.review_id, c.author_id, u.username AS author, c.text, c.pub_date`

type CommentModel struct {
	DB postgres.DBTX
}

func (m *CommentModel) collectOne(rows pgx.Rows, err error) (*models.Comment, error) {
	if err != nil {
		return nil, mapError(err)
	}
	comment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		return nil, mapError(err)
	}
	return &comment, nil
}

func (m *CommentModel) Get(ctx context.Context, id int64) (*models.Comment, error) {
	return m.collectOne(m.DB.Query(
		ctx,
		commentSelect+` FROM comments c JOIN users u ON u.id = c.author_id WHERE c.id = $1`,
		id,
	))
}

func (m *CommentModel) ListForReview(ctx context.Context, reviewID int64) ([]models.Comment, error) {
	rows, err := m.DB.Query(
		ctx,
		commentSelect+` FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.review_id = $1 ORDER BY c.pub_date, c.id`,
		reviewID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	comments, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		return nil, mapError(err)
	}
	return comments, nil
}

func (m *CommentModel) Insert(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	return m.collectOne(m.DB.Query(
		ctx,
		`WITH c AS (
			INSERT INTO comments (review_id, author_id, text) VALUES ($1, $2, $3) RETURNING *
		)
		`+commentSelect+` FROM c JOIN users u ON u.id = c.author_id`,
		comment.ReviewID,
		comment.AuthorID,
		comment.Text,
	))
}

func (m *CommentModel) Update(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	return m.collectOne(m.DB.Query(
		ctx,
		`WITH c AS (
			UPDATE comments SET text = $1 WHERE id = $2 RETURNING *
		)
		`+commentSelect+` FROM c JOIN users u ON u.id = c.author_id`,
		comment.Text,
		comment.ID,
	))
}

func (m *CommentModel) Delete(ctx context.Context, id int64) error {
	return deleteByID(m.DB.Exec(ctx, "DELETE FROM comments WHERE id = $1", id))
}
