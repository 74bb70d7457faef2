package reviews

import (
	"context"
	"errors"
	"log/slog"

	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/services/permissions"
	"yamdb/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
)

type ReviewsStorage interface {
	Get(ctx context.Context, id int64) (*models.Review, error)
	ListForTitle(ctx context.Context, titleID int64) ([]models.Review, error)
	ExistsForAuthor(ctx context.Context, titleID, authorID int64) (bool, error)
	Insert(ctx context.Context, review *models.Review) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
	Scores(ctx context.Context, titleIDs []int64) (map[int64][]int, error)
}

type ReviewInput struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,gte=1,lte=10"`
}

// ReviewPatch is a partial update; nil fields are left unchanged.
type ReviewPatch struct {
	Text  *string `json:"text" validate:"omitempty,min=1"`
	Score *int    `json:"score" validate:"omitempty,gte=1,lte=10"`
}

type ReviewService struct {
	log       *slog.Logger
	storage   ReviewsStorage
	resolver  *Resolver
	validator *govalidator.Validate
}

func NewReviewService(
	log *slog.Logger,
	storage ReviewsStorage,
	resolver *Resolver,
	validator *govalidator.Validate,
) *ReviewService {
	return &ReviewService{log: log, storage: storage, resolver: resolver, validator: validator}
}

func validate(v *govalidator.Validate, input any) error {
	if fieldErrs := validator.ValidateStruct(v, input); fieldErrs != nil {
		return errs.Validation(fieldErrs)
	}
	return nil
}

func (s *ReviewService) List(ctx context.Context, titleID int64) ([]models.Review, error) {
	const op = "reviews.ReviewService.List"
	if _, err := s.resolver.Title(ctx, titleID); err != nil {
		return nil, err
	}
	reviews, err := s.storage.ListForTitle(ctx, titleID)
	if err != nil {
		s.log.Error("Error listing reviews", "op", op, "title_id", titleID, "errMsg", err.Error())
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	return s.resolver.Review(ctx, titleID, reviewID)
}

// Create stores a review by principal. An author reviews each title at most
// once; the storage constraint backs up the explicit check under concurrency.
func (s *ReviewService) Create(
	ctx context.Context,
	principal *models.User,
	titleID int64,
	input ReviewInput,
) (*models.Review, error) {
	const op = "reviews.ReviewService.Create"
	log := s.log.With("op", op, "title_id", titleID)
	if err := permissions.Authorize(principal, permissions.Create, permissions.Resource{Kind: permissions.KindReview}); err != nil {
		return nil, err
	}
	if err := validate(s.validator, input); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Title(ctx, titleID); err != nil {
		return nil, err
	}
	exists, err := s.storage.ExistsForAuthor(ctx, titleID, principal.ID)
	if err != nil {
		log.Error("Error checking existing review", "errMsg", err.Error())
		return nil, err
	}
	if exists {
		log.Info("duplicate review", "author_id", principal.ID)
		return nil, ErrReviewAlreadyExists
	}
	review, err := s.storage.Insert(ctx, &models.Review{
		TitleID:  titleID,
		AuthorID: principal.ID,
		Text:     input.Text,
		Score:    input.Score,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("duplicate review inserted concurrently", "author_id", principal.ID)
			return nil, ErrReviewAlreadyExists
		case errors.Is(err, storage.ErrInvalidReference):
			return nil, ErrTitleNotFound
		}
		log.Error("Error inserting review", "errMsg", err.Error())
		return nil, err
	}
	log.Info("review created", "review_id", review.ID)
	return review, nil
}

func (s *ReviewService) Update(
	ctx context.Context,
	principal *models.User,
	titleID, reviewID int64,
	patch ReviewPatch,
) (*models.Review, error) {
	const op = "reviews.ReviewService.Update"
	log := s.log.With("op", op, "title_id", titleID, "review_id", reviewID)
	review, err := s.resolver.Review(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	res := permissions.Resource{Kind: permissions.KindReview, OwnerID: review.AuthorID}
	if err := permissions.Authorize(principal, permissions.Update, res); err != nil {
		return nil, err
	}
	if err := validate(s.validator, patch); err != nil {
		return nil, err
	}
	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Score != nil {
		review.Score = *patch.Score
	}
	updated, err := s.storage.Update(ctx, review)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error("Error updating review", "errMsg", err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, principal *models.User, titleID, reviewID int64) error {
	const op = "reviews.ReviewService.Delete"
	log := s.log.With("op", op, "title_id", titleID, "review_id", reviewID)
	review, err := s.resolver.Review(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	res := permissions.Resource{Kind: permissions.KindReview, OwnerID: review.AuthorID}
	if err := permissions.Authorize(principal, permissions.Delete, res); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrReviewNotFound
		}
		log.Error("Error deleting review", "errMsg", err.Error())
		return err
	}
	log.Info("review deleted")
	return nil
}
