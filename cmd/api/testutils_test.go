package main

import (
	"testing"
	"time"

	"yamdb/proj/internal/config"
	"yamdb/proj/internal/lib/logger"
	"yamdb/proj/internal/lib/metrics"
	"yamdb/proj/internal/lib/tokens"
	"yamdb/proj/internal/services"
	"yamdb/proj/internal/storage/postgres/models"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(recipient string, tmplName string, tmplData any) error {
	f.sent = append(f.sent, recipient)
	return nil
}

var userColumns = []string{"id", "username", "email", "first_name", "last_name", "bio", "role", "is_superuser", "created_at"}

func NewTestApplication(t *testing.T) (*Application, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	cfg := &config.Config{
		AppSecret: "test-secret",
		TokenTTL:  time.Hour,
		Server:    config.Server{CorsOrigins: []string{"*"}},
	}
	log := logger.Discard()
	m := metrics.New()
	svc := services.NewWithDeps(log, services.Deps{
		Storage:  models.New(mock),
		Mailer:   &fakeMailer{},
		Tokens:   tokens.New(cfg.AppSecret, cfg.TokenTTL),
		Recorder: m,
	})
	return NewApplication(cfg, log, svc, m), mock
}
