package auth

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/domain/roles"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
	"golang.org/x/crypto/blake2b"
)

const confirmationTmpl = "confirmation_code.tmpl"

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TokenIssuer interface {
	Issue(userID int64, role roles.Role) (string, error)
}

type UsersStorage interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
}

// DeliveryRecorder observes confirmation email outcomes.
type DeliveryRecorder interface {
	ConfirmationEmail(delivered bool)
}

type AuthService struct {
	log       *slog.Logger
	users     UsersStorage
	mailer    MailProvider
	tokens    TokenIssuer
	validator *govalidator.Validate
	recorder  DeliveryRecorder
}

func New(
	log *slog.Logger,
	users UsersStorage,
	mailer MailProvider,
	tokens TokenIssuer,
	validator *govalidator.Validate,
	recorder DeliveryRecorder,
) *AuthService {
	return &AuthService{
		log:       log,
		users:     users,
		mailer:    mailer,
		tokens:    tokens,
		validator: validator,
		recorder:  recorder,
	}
}

// ConfirmationCode derives the code a user exchanges for a token. It is a
// plain hash of the username, so it never changes and is not stored.
func ConfirmationCode(username string) string {
	sum := blake2b.Sum256([]byte(username))
	return hex.EncodeToString(sum[:])
}

type signupInput struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,max=254,email"`
}

type tokenInput struct {
	Username         string `json:"username" validate:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

func (a *AuthService) validate(input any) error {
	if fieldErrs := validator.ValidateStruct(a.validator, input); fieldErrs != nil {
		return errs.Validation(fieldErrs)
	}
	return nil
}

// Signup gets or creates the account for (username, email) and mails it the
// confirmation code. Repeating a successful signup mails the same code again.
func (a *AuthService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	const op = "auth.AuthService.Signup"
	log := a.log.With("op", op, "username", username, "email", email)
	if err := a.validate(signupInput{Username: username, Email: email}); err != nil {
		log.Info("invalid signup data", "err", err)
		return nil, err
	}
	user, err := a.getOrCreate(ctx, username, email)
	if err != nil {
		return nil, err
	}
	err = a.mailer.Send(user.Email, confirmationTmpl, map[string]any{
		"username":         user.Username,
		"confirmationCode": ConfirmationCode(user.Username),
	})
	if a.recorder != nil {
		a.recorder.ConfirmationEmail(err == nil)
	}
	if err != nil {
		log.Error("Error sending confirmation email", "errMsg", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrConfirmationCodeNotSent, err)
	}
	log.Info("confirmation code sent")
	return user, nil
}

func (a *AuthService) getOrCreate(ctx context.Context, username, email string) (*models.User, error) {
	const op = "auth.AuthService.getOrCreate"
	log := a.log.With("op", op, "username", username)
	byEmail, err := a.lookup(a.users.GetByEmail(ctx, email))
	if err != nil {
		log.Error("Error getting user by email", "errMsg", err.Error())
		return nil, err
	}
	if byEmail != nil && byEmail.Username != username {
		log.Info("email bound to another username")
		return nil, ErrCredentialsMismatch
	}
	byUsername, err := a.lookup(a.users.GetByUsername(ctx, username))
	if err != nil {
		log.Error("Error getting user by username", "errMsg", err.Error())
		return nil, err
	}
	if byUsername != nil && byUsername.Email != email {
		log.Info("username bound to another email")
		return nil, ErrCredentialsMismatch
	}
	if byUsername != nil {
		return byUsername, nil
	}
	user, err := a.users.Insert(ctx, &models.User{Username: username, Email: email, Role: roles.Default})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("user created concurrently")
			return nil, ErrUserAlreadyExists
		}
		log.Error("Error inserting user", "errMsg", err.Error())
		return nil, err
	}
	log.Info("user created", "user_id", user.ID)
	return user, nil
}

func (a *AuthService) lookup(user *models.User, err error) (*models.User, error) {
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

// IssueToken exchanges a confirmation code for an access token.
func (a *AuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	const op = "auth.AuthService.IssueToken"
	log := a.log.With("op", op, "username", username)
	if err := a.validate(tokenInput{Username: username, ConfirmationCode: code}); err != nil {
		return "", err
	}
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return "", ErrUserNotFound
		}
		log.Error("Error getting user", "errMsg", err.Error())
		return "", err
	}
	expected := ConfirmationCode(user.Username)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) != 1 {
		log.Info("confirmation code mismatch")
		return "", ErrInvalidConfirmationCode
	}
	token, err := a.tokens.Issue(user.ID, user.Role)
	if err != nil {
		log.Error("Error issuing token", "errMsg", err.Error())
		return "", err
	}
	return token, nil
}
