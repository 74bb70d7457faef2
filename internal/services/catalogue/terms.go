package catalogue

import (
	"context"
	"errors"
	"log/slog"

	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/lib/slug"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/services/permissions"
	"yamdb/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
)

type TermsStorage interface {
	List(ctx context.Context) ([]models.Term, error)
	GetBySlug(ctx context.Context, slug string) (*models.Term, error)
	Insert(ctx context.Context, name, slug string) (*models.Term, error)
	Update(ctx context.Context, term *models.Term) (*models.Term, error)
	Delete(ctx context.Context, slug string) error
}

// TermInput creates a genre or category. An empty slug is derived from name
// before validation.
type TermInput struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

type TermPatch struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=256"`
	Slug *string `json:"slug" validate:"omitempty,min=1,max=50,slug"`
}

// TermService manages one kind of catalogue reference data. Genres and
// categories share it and differ only by kind and storage table.
type TermService struct {
	log       *slog.Logger
	kind      permissions.Kind
	notFound  error
	storage   TermsStorage
	validator *govalidator.Validate
}

func NewGenreService(log *slog.Logger, storage TermsStorage, validator *govalidator.Validate) *TermService {
	return &TermService{
		log:       log,
		kind:      permissions.KindGenre,
		notFound:  ErrGenreNotFound,
		storage:   storage,
		validator: validator,
	}
}

func NewCategoryService(log *slog.Logger, storage TermsStorage, validator *govalidator.Validate) *TermService {
	return &TermService{
		log:       log,
		kind:      permissions.KindCategory,
		notFound:  ErrCategoryNotFound,
		storage:   storage,
		validator: validator,
	}
}

func validate(v *govalidator.Validate, input any) error {
	if fieldErrs := validator.ValidateStruct(v, input); fieldErrs != nil {
		return errs.Validation(fieldErrs)
	}
	return nil
}

func (s *TermService) op(method string) string {
	return "catalogue.TermService." + method
}

func (s *TermService) List(ctx context.Context) ([]models.Term, error) {
	terms, err := s.storage.List(ctx)
	if err != nil {
		s.log.Error("Error listing terms", "op", s.op("List"), "kind", s.kind, "errMsg", err.Error())
		return nil, err
	}
	return terms, nil
}

func (s *TermService) Get(ctx context.Context, slug string) (*models.Term, error) {
	log := s.log.With("op", s.op("Get"), "kind", s.kind, "slug", slug)
	term, err := s.storage.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("term not found")
			return nil, s.notFound
		}
		log.Error("Error getting term", "errMsg", err.Error())
		return nil, err
	}
	return term, nil
}

func (s *TermService) Create(ctx context.Context, principal *models.User, input TermInput) (*models.Term, error) {
	log := s.log.With("op", s.op("Create"), "kind", s.kind)
	if err := permissions.Authorize(principal, permissions.Create, permissions.Resource{Kind: s.kind}); err != nil {
		return nil, err
	}
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}
	if err := validate(s.validator, input); err != nil {
		return nil, err
	}
	term, err := s.storage.Insert(ctx, input.Name, input.Slug)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("slug taken", "slug", input.Slug)
			return nil, ErrSlugAlreadyExists
		}
		log.Error("Error inserting term", "errMsg", err.Error())
		return nil, err
	}
	log.Info("term created", "slug", term.Slug)
	return term, nil
}

func (s *TermService) Update(ctx context.Context, principal *models.User, slug string, patch TermPatch) (*models.Term, error) {
	log := s.log.With("op", s.op("Update"), "kind", s.kind, "slug", slug)
	if err := permissions.Authorize(principal, permissions.Update, permissions.Resource{Kind: s.kind}); err != nil {
		return nil, err
	}
	if err := validate(s.validator, patch); err != nil {
		return nil, err
	}
	term, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		term.Name = *patch.Name
	}
	if patch.Slug != nil {
		term.Slug = *patch.Slug
	}
	updated, err := s.storage.Update(ctx, term)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, s.notFound
		case errors.Is(err, storage.ErrConflict):
			return nil, ErrSlugAlreadyExists
		}
		log.Error("Error updating term", "errMsg", err.Error())
		return nil, err
	}
	return updated, nil
}

// Delete removes the term. Titles in a deleted category keep existing
// without one; deleted genres are unlinked.
func (s *TermService) Delete(ctx context.Context, principal *models.User, slug string) error {
	log := s.log.With("op", s.op("Delete"), "kind", s.kind, "slug", slug)
	if err := permissions.Authorize(principal, permissions.Delete, permissions.Resource{Kind: s.kind}); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, slug); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s.notFound
		}
		log.Error("Error deleting term", "errMsg", err.Error())
		return err
	}
	log.Info("term deleted")
	return nil
}
