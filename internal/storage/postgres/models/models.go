package models

import (
	"context"
	"errors"
	"fmt"

	"yamdb/proj/internal/storage"
	"yamdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Models struct {
	User     *UserModel
	Genre    *TermModel
	Category *TermModel
	Title    *TitleModel
	Review   *ReviewModel
	Comment  *CommentModel
}

func New(db postgres.DBTX) *Models {
	return &Models{
		User:     &UserModel{db},
		Genre:    &TermModel{DB: db, Table: "genres"},
		Category: &TermModel{DB: db, Table: "categories"},
		Title:    &TitleModel{db},
		Review:   &ReviewModel{db},
		Comment:  &CommentModel{db},
	}
}

// mapError translates driver errors into storage errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgxErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return storage.ErrNotFound
	case errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode:
		return storage.ErrConflict
	case errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrForeignKeyCode:
		return storage.ErrInvalidReference
	}
	return err
}

func deleteByID(status pgconn.CommandTag, err error) error {
	if err != nil {
		return mapError(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// withTx runs fn in a transaction, committing on success. A failed rollback
// is reported alongside the error that caused it.
func withTx(ctx context.Context, db postgres.DBTX, fn func(pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
