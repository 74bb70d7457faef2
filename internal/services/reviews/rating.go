package reviews

import (
	"context"

	"yamdb/proj/internal/domain/fields"
)

// AverageScore is the arithmetic mean of scores, or no rating for none.
func AverageScore(scores []int) fields.Rating {
	if len(scores) == 0 {
		return fields.Rating{}
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return fields.NewRating(float64(sum) / float64(len(scores)))
}

// Ratings computes the current rating of every given title from storage.
// Titles without reviews are present in the result with no rating.
func (s *ReviewService) Ratings(ctx context.Context, titleIDs ...int64) (map[int64]fields.Rating, error) {
	const op = "reviews.ReviewService.Ratings"
	scores, err := s.storage.Scores(ctx, titleIDs)
	if err != nil {
		s.log.Error("Error loading scores", "op", op, "errMsg", err.Error())
		return nil, err
	}
	ratings := make(map[int64]fields.Rating, len(titleIDs))
	for _, id := range titleIDs {
		ratings[id] = AverageScore(scores[id])
	}
	return ratings, nil
}
