package reviews

import (
	"context"
	"errors"
	"log/slog"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/services/permissions"
	"yamdb/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
)

type CommentsStorage interface {
	Get(ctx context.Context, id int64) (*models.Comment, error)
	ListForReview(ctx context.Context, reviewID int64) ([]models.Comment, error)
	Insert(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

type CommentService struct {
	log       *slog.Logger
	storage   CommentsStorage
	resolver  *Resolver
	validator *govalidator.Validate
}

func NewCommentService(
	log *slog.Logger,
	storage CommentsStorage,
	resolver *Resolver,
	validator *govalidator.Validate,
) *CommentService {
	return &CommentService{log: log, storage: storage, resolver: resolver, validator: validator}
}

func (s *CommentService) List(ctx context.Context, titleID, reviewID int64) ([]models.Comment, error) {
	const op = "reviews.CommentService.List"
	if _, err := s.resolver.Review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comments, err := s.storage.ListForReview(ctx, reviewID)
	if err != nil {
		s.log.Error("Error listing comments", "op", op, "review_id", reviewID, "errMsg", err.Error())
		return nil, err
	}
	return comments, nil
}

func (s *CommentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	return s.resolver.Comment(ctx, titleID, reviewID, commentID)
}

func (s *CommentService) Create(
	ctx context.Context,
	principal *models.User,
	titleID, reviewID int64,
	input CommentInput,
) (*models.Comment, error) {
	const op = "reviews.CommentService.Create"
	log := s.log.With("op", op, "title_id", titleID, "review_id", reviewID)
	if err := permissions.Authorize(principal, permissions.Create, permissions.Resource{Kind: permissions.KindComment}); err != nil {
		return nil, err
	}
	if err := validate(s.validator, input); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.storage.Insert(ctx, &models.Comment{
		ReviewID: reviewID,
		AuthorID: principal.ID,
		Text:     input.Text,
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidReference) {
			return nil, ErrReviewNotFound
		}
		log.Error("Error inserting comment", "errMsg", err.Error())
		return nil, err
	}
	log.Info("comment created", "comment_id", comment.ID)
	return comment, nil
}

func (s *CommentService) Update(
	ctx context.Context,
	principal *models.User,
	titleID, reviewID, commentID int64,
	input CommentInput,
) (*models.Comment, error) {
	const op = "reviews.CommentService.Update"
	log := s.log.With("op", op, "comment_id", commentID)
	comment, err := s.resolver.Comment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	res := permissions.Resource{Kind: permissions.KindComment, OwnerID: comment.AuthorID}
	if err := permissions.Authorize(principal, permissions.Update, res); err != nil {
		return nil, err
	}
	if err := validate(s.validator, input); err != nil {
		return nil, err
	}
	comment.Text = input.Text
	updated, err := s.storage.Update(ctx, comment)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		log.Error("Error updating comment", "errMsg", err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *CommentService) Delete(ctx context.Context, principal *models.User, titleID, reviewID, commentID int64) error {
	const op = "reviews.CommentService.Delete"
	log := s.log.With("op", op, "comment_id", commentID)
	comment, err := s.resolver.Comment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	res := permissions.Resource{Kind: permissions.KindComment, OwnerID: comment.AuthorID}
	if err := permissions.Authorize(principal, permissions.Delete, res); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, commentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCommentNotFound
		}
		log.Error("Error deleting comment", "errMsg", err.Error())
		return err
	}
	log.Info("comment deleted")
	return nil
}
