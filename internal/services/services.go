package services

import (
	"log/slog"

	"yamdb/proj/internal/config"
	"yamdb/proj/internal/lib/metrics"
	"yamdb/proj/internal/lib/tokens"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/mails"
	"yamdb/proj/internal/services/auth"
	"yamdb/proj/internal/services/catalogue"
	"yamdb/proj/internal/services/reviews"
	"yamdb/proj/internal/services/users"
	"yamdb/proj/internal/storage/postgres"
	"yamdb/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth       *auth.AuthService
	Users      *users.UserService
	Genres     *catalogue.TermService
	Categories *catalogue.TermService
	Titles     *catalogue.TitleService
	Reviews    *reviews.ReviewService
	Comments   *reviews.CommentService
	Tokens     *tokens.Manager
}

// Deps are the collaborators services are built from.
type Deps struct {
	Storage  *models.Models
	Mailer   auth.MailProvider
	Tokens   *tokens.Manager
	Recorder auth.DeliveryRecorder
}

func New(log *slog.Logger, cfg *config.Config, db postgres.DBTX, m *metrics.Metrics) *Services {
	mailer := mails.New(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Timeout,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.Sender,
	)
	return NewWithDeps(log, Deps{
		Storage:  models.New(db),
		Mailer:   mailer,
		Tokens:   tokens.New(cfg.AppSecret, cfg.TokenTTL),
		Recorder: m,
	})
}

func NewWithDeps(log *slog.Logger, deps Deps) *Services {
	v := validator.New()
	st := deps.Storage
	resolver := reviews.NewResolver(log, st.Title, st.Review, st.Comment)
	reviewService := reviews.NewReviewService(log, st.Review, resolver, v)
	return &Services{
		Auth:       auth.New(log, st.User, deps.Mailer, deps.Tokens, v, deps.Recorder),
		Users:      users.New(log, st.User, v),
		Genres:     catalogue.NewGenreService(log, st.Genre, v),
		Categories: catalogue.NewCategoryService(log, st.Category, v),
		Titles:     catalogue.NewTitleService(log, st.Title, st.Genre, st.Category, reviewService, v),
		Reviews:    reviewService,
		Comments:   reviews.NewCommentService(log, st.Comment, resolver, v),
		Tokens:     deps.Tokens,
	}
}
