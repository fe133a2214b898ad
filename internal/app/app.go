// Package app wires configuration, the provider client, stores and
// services into one runnable application.
package app

import (
	"fmt"
	"net/http"

	"github.com/nuchoate/league-archive/external/sleeper"
	"github.com/nuchoate/league-archive/internal/config"
	"github.com/nuchoate/league-archive/internal/domain/recap"
	"github.com/nuchoate/league-archive/internal/infrastructure/store"
	"github.com/nuchoate/league-archive/internal/interfaces/preview"
	"github.com/nuchoate/league-archive/internal/platform/logging"
	"github.com/nuchoate/league-archive/internal/usecase"
)

type Application struct {
	Config  config.Config
	Logger  *logging.Logger
	Library recap.Library
	Fetch   *usecase.FetchService
	Munge   *usecase.MungeService
	Report  *usecase.ReportService
	Publish *usecase.PublishService
	Preview *preview.Server
}

func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var logger *logging.Logger
	switch cfg.LogFormat {
	case config.LogFormatJSON:
		logger = logging.NewJSON(cfg.LogLevel)
	default:
		logger = logging.NewConsole(cfg.LogLevel)
	}
	logging.SetDefault(logger)

	client := sleeper.NewClient(sleeper.ClientConfig{
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.HTTPTimeout,
		Logger:     logger,
	})

	rawStore := store.NewRawStore(cfg.RawDir)
	mungedStore := store.NewMungedStore(cfg.MungedDir)

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Library: mungedStore,
		Fetch:   usecase.NewFetchService(client, rawStore, logger),
		Munge:   usecase.NewMungeService(rawStore, mungedStore, logger),
		Report:  usecase.NewReportService(mungedStore, cfg.ReportsDir, logger),
		Publish: usecase.NewPublishService(cfg.ReportsDir, cfg.PublishDir, logger),
		Preview: preview.NewServer(cfg.PreviewAddr, cfg.ReportsDir, logger),
	}, nil
}

func (a *Application) Close() {
	if a == nil || a.Logger == nil {
		return
	}
	_ = a.Logger.Sync()
}
