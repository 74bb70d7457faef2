package reviews

import (
	"context"
	"testing"

	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/fields"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/domain/roles"
	"yamdb/proj/internal/lib/logger"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTitles map[int64]*models.Title

func (f fakeTitles) Get(_ context.Context, id int64) (*models.Title, error) {
	if t, ok := f[id]; ok {
		return t, nil
	}
	return nil, storage.ErrNotFound
}

type fakeReviews struct {
	rows   map[int64]*models.Review
	nextID int64
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{rows: make(map[int64]*models.Review)}
}

func (f *fakeReviews) Get(_ context.Context, id int64) (*models.Review, error) {
	if r, ok := f.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeReviews) ListForTitle(_ context.Context, titleID int64) ([]models.Review, error) {
	var res []models.Review
	for id := int64(1); id <= f.nextID; id++ {
		if r, ok := f.rows[id]; ok && r.TitleID == titleID {
			res = append(res, *r)
		}
	}
	return res, nil
}

func (f *fakeReviews) ExistsForAuthor(_ context.Context, titleID, authorID int64) (bool, error) {
	for _, r := range f.rows {
		if r.TitleID == titleID && r.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviews) Insert(_ context.Context, review *models.Review) (*models.Review, error) {
	f.nextID++
	review.ID = f.nextID
	cp := *review
	f.rows[review.ID] = &cp
	return review, nil
}

func (f *fakeReviews) Update(_ context.Context, review *models.Review) (*models.Review, error) {
	if _, ok := f.rows[review.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	cp := *review
	f.rows[review.ID] = &cp
	return review, nil
}

func (f *fakeReviews) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeReviews) Scores(_ context.Context, titleIDs []int64) (map[int64][]int, error) {
	res := make(map[int64][]int)
	for id := int64(1); id <= f.nextID; id++ {
		r, ok := f.rows[id]
		if !ok {
			continue
		}
		for _, titleID := range titleIDs {
			if r.TitleID == titleID {
				res[titleID] = append(res[titleID], r.Score)
			}
		}
	}
	return res, nil
}

type fakeComments struct {
	rows   map[int64]*models.Comment
	nextID int64
}

func newFakeComments() *fakeComments {
	return &fakeComments{rows: make(map[int64]*models.Comment)}
}

func (f *fakeComments) Get(_ context.Context, id int64) (*models.Comment, error) {
	if c, ok := f.rows[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeComments) ListForReview(_ context.Context, reviewID int64) ([]models.Comment, error) {
	var res []models.Comment
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.rows[id]; ok && c.ReviewID == reviewID {
			res = append(res, *c)
		}
	}
	return res, nil
}

func (f *fakeComments) Insert(_ context.Context, comment *models.Comment) (*models.Comment, error) {
	f.nextID++
	comment.ID = f.nextID
	cp := *comment
	f.rows[comment.ID] = &cp
	return comment, nil
}

func (f *fakeComments) Update(_ context.Context, comment *models.Comment) (*models.Comment, error) {
	if _, ok := f.rows[comment.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	cp := *comment
	f.rows[comment.ID] = &cp
	return comment, nil
}

func (f *fakeComments) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

// racingReviews reports no existing review but loses the insert to the
// unique constraint, as when two requests from one author interleave.
type racingReviews struct {
	*fakeReviews
}

func (racingReviews) ExistsForAuthor(context.Context, int64, int64) (bool, error) {
	return false, nil
}

func (racingReviews) Insert(context.Context, *models.Review) (*models.Review, error) {
	return nil, storage.ErrConflict
}

type testEnv struct {
	reviews     *ReviewService
	comments    *CommentService
	reviewRows  *fakeReviews
	commentRows *fakeComments
}

func newTestEnv() *testEnv {
	log := logger.Discard()
	titles := fakeTitles{1: {ID: 1, Name: "Dune"}, 2: {ID: 2, Name: "Solaris"}}
	reviewRows, commentRows := newFakeReviews(), newFakeComments()
	resolver := NewResolver(log, titles, reviewRows, commentRows)
	v := validator.New()
	return &testEnv{
		reviews:     NewReviewService(log, reviewRows, resolver, v),
		comments:    NewCommentService(log, commentRows, resolver, v),
		reviewRows:  reviewRows,
		commentRows: commentRows,
	}
}

func user(id int64, role roles.Role) *models.User {
	return &models.User{ID: id, Username: "user" + string(rune('a'+id)), Role: role}
}

func TestAverageScore(t *testing.T) {
	assert.Equal(t, fields.Rating{}, AverageScore(nil))
	assert.Equal(t, fields.NewRating(8), AverageScore([]int{6, 8, 10}))
	assert.Equal(t, fields.NewRating(7.5), AverageScore([]int{7, 8}))
}

func TestReviewService_RatingFollowsReviews(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	scores := []int{6, 8, 10}
	var last *models.Review
	for i, score := range scores {
		review, err := env.reviews.Create(ctx, user(int64(i+1), roles.User), 1, ReviewInput{Text: "ok", Score: score})
		require.NoError(t, err)
		last = review
	}

	ratings, err := env.reviews.Ratings(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, fields.NewRating(8), ratings[1])
	assert.False(t, ratings[2].Valid)

	require.NoError(t, env.reviews.Delete(ctx, user(3, roles.User), 1, last.ID))
	ratings, err = env.reviews.Ratings(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, fields.NewRating(7), ratings[1])
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("one review per author and title", func(t *testing.T) {
		env := newTestEnv()
		author := user(1, roles.User)
		_, err := env.reviews.Create(ctx, author, 1, ReviewInput{Text: "great", Score: 9})
		require.NoError(t, err)
		_, err = env.reviews.Create(ctx, author, 1, ReviewInput{Text: "again", Score: 3})
		assert.ErrorIs(t, err, ErrReviewAlreadyExists)
		assert.ErrorIs(t, err, errs.ErrConflict)
		_, err = env.reviews.Create(ctx, author, 2, ReviewInput{Text: "other title", Score: 3})
		assert.NoError(t, err)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := newTestEnv().reviews.Create(ctx, models.AnonymousUser, 1, ReviewInput{Text: "x", Score: 5})
		assert.ErrorIs(t, err, errs.ErrAuthenticationRequired)
	})

	t.Run("score out of range", func(t *testing.T) {
		env := newTestEnv()
		for _, score := range []int{0, 11, -1} {
			_, err := env.reviews.Create(ctx, user(1, roles.User), 1, ReviewInput{Text: "x", Score: score})
			assert.ErrorIs(t, err, errs.ErrValidation, score)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := newTestEnv().reviews.Create(ctx, user(1, roles.User), 99, ReviewInput{Text: "x", Score: 5})
		assert.ErrorIs(t, err, ErrTitleNotFound)
	})

	t.Run("unique constraint after passing check", func(t *testing.T) {
		log := logger.Discard()
		rows := racingReviews{newFakeReviews()}
		titles := fakeTitles{1: {ID: 1, Name: "Dune"}}
		resolver := NewResolver(log, titles, rows, newFakeComments())
		svc := NewReviewService(log, rows, resolver, validator.New())

		review, err := svc.Create(ctx, user(1, roles.User), 1, ReviewInput{Text: "great", Score: 9})
		assert.Nil(t, review)
		assert.ErrorIs(t, err, ErrReviewAlreadyExists)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestReviewService_Ownership(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	review, err := env.reviews.Create(ctx, user(1, roles.User), 1, ReviewInput{Text: "mine", Score: 7})
	require.NoError(t, err)

	text := "not yours"
	_, err = env.reviews.Update(ctx, user(2, roles.User), 1, review.ID, ReviewPatch{Text: &text})
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.ErrorIs(t, env.reviews.Delete(ctx, user(2, roles.User), 1, review.ID), errs.ErrPermissionDenied)

	score := 3
	updated, err := env.reviews.Update(ctx, user(1, roles.User), 1, review.ID, ReviewPatch{Score: &score})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Score)
	assert.Equal(t, "mine", updated.Text)

	require.NoError(t, env.reviews.Delete(ctx, user(5, roles.Moderator), 1, review.ID))
	_, err = env.reviews.Get(ctx, 1, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewService_UpdateKeepsUniqueness(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	author := user(1, roles.User)
	review, err := env.reviews.Create(ctx, author, 1, ReviewInput{Text: "first", Score: 4})
	require.NoError(t, err)

	text := "edited"
	_, err = env.reviews.Update(ctx, author, 1, review.ID, ReviewPatch{Text: &text})
	assert.NoError(t, err)
}

func TestResolver_ParentMismatch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	review, err := env.reviews.Create(ctx, user(1, roles.User), 1, ReviewInput{Text: "x", Score: 5})
	require.NoError(t, err)
	comment, err := env.comments.Create(ctx, user(2, roles.User), 1, review.ID, CommentInput{Text: "agree"})
	require.NoError(t, err)

	_, err = env.reviews.Get(ctx, 2, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
	_, err = env.comments.Get(ctx, 2, review.ID, comment.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
	_, err = env.comments.Get(ctx, 1, review.ID+1, comment.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = env.comments.Get(ctx, 99, review.ID, comment.ID)
	assert.ErrorIs(t, err, ErrTitleNotFound)

	got, err := env.comments.Get(ctx, 1, review.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "agree", got.Text)
}

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	review, err := env.reviews.Create(ctx, user(1, roles.User), 1, ReviewInput{Text: "x", Score: 5})
	require.NoError(t, err)

	_, err = env.comments.Create(ctx, models.AnonymousUser, 1, review.ID, CommentInput{Text: "hi"})
	assert.ErrorIs(t, err, errs.ErrAuthenticationRequired)
	_, err = env.comments.Create(ctx, user(2, roles.User), 1, review.ID, CommentInput{})
	assert.ErrorIs(t, err, errs.ErrValidation)

	comment, err := env.comments.Create(ctx, user(2, roles.User), 1, review.ID, CommentInput{Text: "hi"})
	require.NoError(t, err)
	_, err = env.comments.Create(ctx, user(2, roles.User), 1, review.ID, CommentInput{Text: "hi again"})
	require.NoError(t, err)

	list, err := env.comments.List(ctx, 1, review.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = env.comments.Update(ctx, user(3, roles.User), 1, review.ID, comment.ID, CommentInput{Text: "edit"})
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	updated, err := env.comments.Update(ctx, user(7, roles.Admin), 1, review.ID, comment.ID, CommentInput{Text: "edit"})
	require.NoError(t, err)
	assert.Equal(t, "edit", updated.Text)

	require.NoError(t, env.comments.Delete(ctx, user(2, roles.User), 1, review.ID, comment.ID))
	_, err = env.comments.Get(ctx, 1, review.ID, comment.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
