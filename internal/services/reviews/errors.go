package reviews

import "yamdb/proj/internal/domain/errs"

var (
	ErrTitleNotFound       = errs.New(errs.ErrNotFound, "title not found")
	ErrReviewNotFound      = errs.New(errs.ErrNotFound, "review not found")
	ErrCommentNotFound     = errs.New(errs.ErrNotFound, "comment not found")
	ErrReviewAlreadyExists = errs.New(errs.ErrConflict, "a work may receive only one review per author")
)
