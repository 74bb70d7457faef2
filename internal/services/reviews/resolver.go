package reviews

import (
	"context"
	"errors"
	"log/slog"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type TitlesStorage interface {
	Get(ctx context.Context, id int64) (*models.Title, error)
}

// Resolver walks the title -> review -> comment chain. A child is only
// visible through the parent it belongs to: addressing it under any other
// parent yields the child's not-found error.
type Resolver struct {
	log      *slog.Logger
	titles   TitlesStorage
	reviews  ReviewsStorage
	comments CommentsStorage
}

func NewResolver(log *slog.Logger, titles TitlesStorage, reviews ReviewsStorage, comments CommentsStorage) *Resolver {
	return &Resolver{log: log, titles: titles, reviews: reviews, comments: comments}
}

func (r *Resolver) Title(ctx context.Context, titleID int64) (*models.Title, error) {
	const op = "reviews.Resolver.Title"
	title, err := r.titles.Get(ctx, titleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		r.log.Error("Error getting title", "op", op, "title_id", titleID, "errMsg", err.Error())
		return nil, err
	}
	return title, nil
}

func (r *Resolver) Review(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	const op = "reviews.Resolver.Review"
	log := r.log.With("op", op, "title_id", titleID, "review_id", reviewID)
	if _, err := r.Title(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := r.reviews.Get(ctx, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error("Error getting review", "errMsg", err.Error())
		return nil, err
	}
	if review.TitleID != titleID {
		log.Info("review belongs to another title", "actual_title_id", review.TitleID)
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func (r *Resolver) Comment(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	const op = "reviews.Resolver.Comment"
	log := r.log.With("op", op, "title_id", titleID, "review_id", reviewID, "comment_id", commentID)
	if _, err := r.Review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := r.comments.Get(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		log.Error("Error getting comment", "errMsg", err.Error())
		return nil, err
	}
	if comment.ReviewID != reviewID {
		log.Info("comment belongs to another review", "actual_review_id", comment.ReviewID)
		return nil, ErrCommentNotFound
	}
	return comment, nil
}
