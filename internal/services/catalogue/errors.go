package catalogue

import "yamdb/proj/internal/domain/errs"

var (
	ErrGenreNotFound     = errs.New(errs.ErrNotFound, "genre not found")
	ErrCategoryNotFound  = errs.New(errs.ErrNotFound, "category not found")
	ErrTitleNotFound     = errs.New(errs.ErrNotFound, "title not found")
	ErrSlugAlreadyExists = errs.Invalid("slug", "a record with this slug already exists")
	ErrGenreRemoved      = errs.Invalid("genre", "genre was removed, please retry")
	ErrCategoryRemoved   = errs.Invalid("category", "category was removed, please retry")
)
