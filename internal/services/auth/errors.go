package auth

import "yamdb/proj/internal/domain/errs"

var (
	ErrUserNotFound            = errs.New(errs.ErrNotFound, "user not found")
	ErrCredentialsMismatch     = errs.Invalid("email", "email and username do not belong to the same account")
	ErrInvalidConfirmationCode = errs.New(errs.ErrInvalidCredential, "invalid confirmation code")
	ErrUserAlreadyExists       = errs.New(errs.ErrConflict, "user with this username or email already exists")
	ErrConfirmationCodeNotSent = errs.New(errs.ErrDependencyFailure, "failed to send confirmation code")
)
