package users

import (
	"context"
	"errors"
	"log/slog"

	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/domain/roles"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/services/permissions"
	"yamdb/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
)

type UsersStorage interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type UserInput struct {
	Username  string     `json:"username" validate:"required,max=150,username"`
	Email     string     `json:"email" validate:"required,max=254,email"`
	FirstName string     `json:"first_name" validate:"max=150"`
	LastName  string     `json:"last_name" validate:"max=150"`
	Bio       string     `json:"bio"`
	Role      roles.Role `json:"role" validate:"omitempty,role"`
}

type UserPatch struct {
	Username  *string     `json:"username" validate:"omitempty,max=150,username"`
	Email     *string     `json:"email" validate:"omitempty,max=254,email"`
	FirstName *string     `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string     `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string     `json:"bio"`
	Role      *roles.Role `json:"role" validate:"omitempty,role"`
}

func (p *UserPatch) apply(user *models.User) {
	if p.Username != nil {
		user.Username = *p.Username
	}
	if p.Email != nil {
		user.Email = *p.Email
	}
	if p.FirstName != nil {
		user.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		user.LastName = *p.LastName
	}
	if p.Bio != nil {
		user.Bio = *p.Bio
	}
	if p.Role != nil {
		user.Role = *p.Role
	}
}

type UserService struct {
	log       *slog.Logger
	storage   UsersStorage
	validator *govalidator.Validate
}

func New(log *slog.Logger, storage UsersStorage, validator *govalidator.Validate) *UserService {
	return &UserService{log: log, storage: storage, validator: validator}
}

func (s *UserService) validate(input any) error {
	if fieldErrs := validator.ValidateStruct(s.validator, input); fieldErrs != nil {
		return errs.Validation(fieldErrs)
	}
	return nil
}

func (s *UserService) mapError(log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, storage.ErrConflict):
		return ErrUserAlreadyExists
	}
	log.Error(err.Error())
	return err
}

// Principal loads the account an access token was issued for. Authorization
// always uses the stored role, never the one the token carries.
func (s *UserService) Principal(ctx context.Context, id int64) (*models.User, error) {
	const op = "users.UserService.Principal"
	user, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(s.log.With("op", op, "id", id), err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, principal *models.User) ([]models.User, error) {
	const op = "users.UserService.List"
	if err := permissions.Authorize(principal, permissions.Read, permissions.Resource{Kind: permissions.KindUser}); err != nil {
		return nil, err
	}
	users, err := s.storage.List(ctx)
	if err != nil {
		return nil, s.mapError(s.log.With("op", op), err)
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, principal *models.User, input UserInput) (*models.User, error) {
	const op = "users.UserService.Create"
	log := s.log.With("op", op, "username", input.Username)
	if err := permissions.Authorize(principal, permissions.Create, permissions.Resource{Kind: permissions.KindUser}); err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}
	if input.Role == "" {
		input.Role = roles.Default
	}
	user, err := s.storage.Insert(ctx, &models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		return nil, s.mapError(log, err)
	}
	log.Info("user created", "id", user.ID, "role", user.Role)
	return user, nil
}

func (s *UserService) Get(ctx context.Context, principal *models.User, username string) (*models.User, error) {
	const op = "users.UserService.Get"
	if err := permissions.Authorize(principal, permissions.Read, permissions.Resource{Kind: permissions.KindUser}); err != nil {
		return nil, err
	}
	user, err := s.storage.GetByUsername(ctx, username)
	if err != nil {
		return nil, s.mapError(s.log.With("op", op, "username", username), err)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, principal *models.User, username string, patch UserPatch) (*models.User, error) {
	const op = "users.UserService.Update"
	log := s.log.With("op", op, "username", username)
	if err := permissions.Authorize(principal, permissions.Update, permissions.Resource{Kind: permissions.KindUser}); err != nil {
		return nil, err
	}
	if err := s.validate(patch); err != nil {
		return nil, err
	}
	user, err := s.storage.GetByUsername(ctx, username)
	if err != nil {
		return nil, s.mapError(log, err)
	}
	patch.apply(user)
	updated, err := s.storage.Update(ctx, user)
	if err != nil {
		return nil, s.mapError(log, err)
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, principal *models.User, username string) error {
	const op = "users.UserService.Delete"
	log := s.log.With("op", op, "username", username)
	if err := permissions.Authorize(principal, permissions.Delete, permissions.Resource{Kind: permissions.KindUser}); err != nil {
		return err
	}
	user, err := s.storage.GetByUsername(ctx, username)
	if err != nil {
		return s.mapError(log, err)
	}
	if err := s.storage.Delete(ctx, user.ID); err != nil {
		return s.mapError(log, err)
	}
	log.Info("user deleted")
	return nil
}

// Me returns the principal's own account.
func (s *UserService) Me(ctx context.Context, principal *models.User) (*models.User, error) {
	const op = "users.UserService.Me"
	res := permissions.Resource{Kind: permissions.KindProfile, OwnerID: principal.ID}
	if err := permissions.Authorize(principal, permissions.Read, res); err != nil {
		return nil, err
	}
	user, err := s.storage.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, s.mapError(s.log.With("op", op, "id", principal.ID), err)
	}
	return user, nil
}

// UpdateMe patches the principal's own account. The role cannot be changed
// here, whatever the principal's privileges.
func (s *UserService) UpdateMe(ctx context.Context, principal *models.User, patch UserPatch) (*models.User, error) {
	const op = "users.UserService.UpdateMe"
	log := s.log.With("op", op, "id", principal.ID)
	res := permissions.Resource{Kind: permissions.KindProfile, OwnerID: principal.ID}
	if err := permissions.Authorize(principal, permissions.Update, res); err != nil {
		return nil, err
	}
	patch.Role = nil
	if err := s.validate(patch); err != nil {
		return nil, err
	}
	user, err := s.storage.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, s.mapError(log, err)
	}
	patch.apply(user)
	updated, err := s.storage.Update(ctx, user)
	if err != nil {
		return nil, s.mapError(log, err)
	}
	return updated, nil
}
