package users

import "yamdb/proj/internal/domain/errs"

var (
	ErrUserNotFound      = errs.New(errs.ErrNotFound, "user not found")
	ErrUserAlreadyExists = errs.New(errs.ErrConflict, "user with that username or email already exists")
)
