package models

import (
	"context"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

const userColumns = "id, username, email, first_name, last_name, bio, role, is_superuser, created_at"

type UserModel struct {
	DB postgres.DBTX
}

func (m *UserModel) getBy(ctx context.Context, column string, value any) (*models.User, error) {
	rows, err := m.DB.Query(ctx, "SELECT "+userColumns+" FROM users WHERE "+column+" = $1", value)
	if err != nil {
		return nil, mapError(err)
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (m *UserModel) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.getBy(ctx, "id", id)
}

func (m *UserModel) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.getBy(ctx, "username", username)
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getBy(ctx, "email", email)
}

func (m *UserModel) List(ctx context.Context) ([]models.User, error) {
	rows, err := m.DB.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY username")
	if err != nil {
		return nil, mapError(err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

func (m *UserModel) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	rows, err := m.DB.Query(
		ctx,
		`INSERT INTO users (username, email, first_name, last_name, bio, role)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+userColumns,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
	)
	if err != nil {
		return nil, mapError(err)
	}
	inserted, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapError(err)
	}
	return &inserted, nil
}

func (m *UserModel) Update(ctx context.Context, user *models.User) (*models.User, error) {
	rows, err := m.DB.Query(
		ctx,
		`UPDATE users SET username = $1, email = $2, first_name = $3, last_name = $4, bio = $5, role = $6
		WHERE id = $7 RETURNING `+userColumns,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.ID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapError(err)
	}
	return &updated, nil
}

func (m *UserModel) Delete(ctx context.Context, id int64) error {
	return deleteByID(m.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id))
}
