package catalogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/fields"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/services/permissions"
	"yamdb/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
)

type TitlesStorage interface {
	Get(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, f filters.TitleFilters) ([]models.Title, error)
	Insert(ctx context.Context, title *models.Title) (*models.Title, error)
	Update(ctx context.Context, title *models.Title) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type GenreLookup interface {
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
}

type CategoryLookup interface {
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// RatingSource computes current title ratings.
type RatingSource interface {
	Ratings(ctx context.Context, titleIDs ...int64) (map[int64]fields.Rating, error)
}

// TitleInput refers to genres and the category by slug.
type TitleInput struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"year"`
	Description string   `json:"description"`
	Genre       []string `json:"genre" validate:"required,min=1,unique,dive,max=50"`
	Category    string   `json:"category" validate:"omitempty,max=50"`
}

// TitlePatch leaves nil fields unchanged. An empty category clears it.
type TitlePatch struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=256"`
	Year        *int      `json:"year" validate:"omitempty,year"`
	Description *string   `json:"description"`
	Genre       *[]string `json:"genre" validate:"omitempty,min=1,unique,dive,max=50"`
	Category    *string   `json:"category" validate:"omitempty,max=50"`
}

type TitleService struct {
	log        *slog.Logger
	storage    TitlesStorage
	genres     GenreLookup
	categories CategoryLookup
	ratings    RatingSource
	validator  *govalidator.Validate
}

func NewTitleService(
	log *slog.Logger,
	storage TitlesStorage,
	genres GenreLookup,
	categories CategoryLookup,
	ratings RatingSource,
	validator *govalidator.Validate,
) *TitleService {
	return &TitleService{
		log:        log,
		storage:    storage,
		genres:     genres,
		categories: categories,
		ratings:    ratings,
		validator:  validator,
	}
}

func (s *TitleService) withRatings(ctx context.Context, titles []models.Title) error {
	if len(titles) == 0 {
		return nil
	}
	ids := make([]int64, len(titles))
	for i := range titles {
		ids[i] = titles[i].ID
	}
	ratings, err := s.ratings.Ratings(ctx, ids...)
	if err != nil {
		return err
	}
	for i := range titles {
		titles[i].Rating = ratings[titles[i].ID]
	}
	return nil
}

func (s *TitleService) List(ctx context.Context, f filters.TitleFilters) ([]models.Title, error) {
	const op = "catalogue.TitleService.List"
	log := s.log.With("op", op, "filters", f)
	if err := validate(s.validator, f); err != nil {
		return nil, err
	}
	titles, err := s.storage.List(ctx, f)
	if err != nil {
		log.Error("Error listing titles", "errMsg", err.Error())
		return nil, err
	}
	if err := s.withRatings(ctx, titles); err != nil {
		log.Error("Error computing ratings", "errMsg", err.Error())
		return nil, err
	}
	return titles, nil
}

func (s *TitleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	const op = "catalogue.TitleService.Get"
	log := s.log.With("op", op, "id", id)
	title, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("title not found")
			return nil, ErrTitleNotFound
		}
		log.Error("Error getting title", "errMsg", err.Error())
		return nil, err
	}
	titles := []models.Title{*title}
	if err := s.withRatings(ctx, titles); err != nil {
		log.Error("Error computing rating", "errMsg", err.Error())
		return nil, err
	}
	return &titles[0], nil
}

func (s *TitleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.genres.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) == len(slugs) {
		return genres, nil
	}
	found := make(map[string]bool, len(genres))
	for _, g := range genres {
		found[g.Slug] = true
	}
	for _, sl := range slugs {
		if !found[sl] {
			return nil, errs.Invalid("genre", fmt.Sprintf("unknown genre %q", sl))
		}
	}
	return genres, nil
}

func (s *TitleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	if slug == "" {
		return nil, nil
	}
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errs.Invalid("category", fmt.Sprintf("unknown category %q", slug))
		}
		return nil, err
	}
	return category, nil
}

// referenceError reports which term a title write lost to a concurrent
// delete, or nil when err is not a foreign key violation.
func referenceError(err error) error {
	var refErr *storage.ReferenceError
	switch {
	case errors.As(err, &refErr) && refErr.Column == "category_id":
		return ErrCategoryRemoved
	case errors.Is(err, storage.ErrInvalidReference):
		return ErrGenreRemoved
	}
	return nil
}

func (s *TitleService) Create(ctx context.Context, principal *models.User, input TitleInput) (*models.Title, error) {
	const op = "catalogue.TitleService.Create"
	log := s.log.With("op", op, "name", input.Name)
	if err := permissions.Authorize(principal, permissions.Create, permissions.Resource{Kind: permissions.KindTitle}); err != nil {
		return nil, err
	}
	if err := validate(s.validator, input); err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, input.Genre)
	if err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}
	title, err := s.storage.Insert(ctx, &models.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Genres:      genres,
		Category:    category,
	})
	if err != nil {
		if refErr := referenceError(err); refErr != nil {
			log.Info("term removed while creating title", "errMsg", err.Error())
			return nil, refErr
		}
		log.Error("Error inserting title", "errMsg", err.Error())
		return nil, err
	}
	log.Info("title created", "id", title.ID)
	return title, nil
}

func (s *TitleService) Update(ctx context.Context, principal *models.User, id int64, patch TitlePatch) (*models.Title, error) {
	const op = "catalogue.TitleService.Update"
	log := s.log.With("op", op, "id", id)
	if err := permissions.Authorize(principal, permissions.Update, permissions.Resource{Kind: permissions.KindTitle}); err != nil {
		return nil, err
	}
	if err := validate(s.validator, patch); err != nil {
		return nil, err
	}
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		title.Name = *patch.Name
	}
	if patch.Year != nil {
		title.Year = *patch.Year
	}
	if patch.Description != nil {
		title.Description = *patch.Description
	}
	if patch.Genre != nil {
		if title.Genres, err = s.resolveGenres(ctx, *patch.Genre); err != nil {
			return nil, err
		}
	}
	if patch.Category != nil {
		if title.Category, err = s.resolveCategory(ctx, *patch.Category); err != nil {
			return nil, err
		}
	}
	updated, err := s.storage.Update(ctx, title)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		if refErr := referenceError(err); refErr != nil {
			log.Info("term removed while updating title", "errMsg", err.Error())
			return nil, refErr
		}
		log.Error("Error updating title", "errMsg", err.Error())
		return nil, err
	}
	updated.Rating = title.Rating
	return updated, nil
}

// Delete removes the title together with its reviews and their comments.
func (s *TitleService) Delete(ctx context.Context, principal *models.User, id int64) error {
	const op = "catalogue.TitleService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := permissions.Authorize(principal, permissions.Delete, permissions.Resource{Kind: permissions.KindTitle}); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTitleNotFound
		}
		log.Error("Error deleting title", "errMsg", err.Error())
		return err
	}
	log.Info("title deleted")
	return nil
}
