package main

import (
	"log/slog"

	"yamdb/proj/internal/config"
	"yamdb/proj/internal/lib/decoder"
	"yamdb/proj/internal/lib/metrics"
	"yamdb/proj/internal/services"
)

type Application struct {
	cfg      *config.Config
	log      *slog.Logger
	Http     *Http
	services *services.Services
	metrics  *metrics.Metrics
	decoder  *decoder.QueryDecoder
}

func NewApplication(cfg *config.Config, log *slog.Logger, svc *services.Services, m *metrics.Metrics) *Application {
	app := &Application{
		cfg:      cfg,
		log:      log,
		services: svc,
		metrics:  m,
		decoder:  decoder.New(),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
	if m != nil {
		app.Http.denials = m
	}
	return app
}
