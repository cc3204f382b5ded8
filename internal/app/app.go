package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/handlers"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/services/gemini"
	"github.com/ternarybob/reperio/internal/services/poller"
	"github.com/ternarybob/reperio/internal/services/staging"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Gemini File Search gateway
	FileSearchService interfaces.FileSearchService
	QueryService      interfaces.QueryService

	// Upload staging area with janitor
	StagingService interfaces.StagingService

	// Operation poller
	Poller *poller.Poller

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	StoreHandler     *handlers.StoreHandler
	DocumentHandler  *handlers.DocumentHandler
	UploadHandler    *handlers.UploadHandler
	OperationHandler *handlers.OperationHandler
	QueryHandler     *handlers.QueryHandler
	SocketHandler    *handlers.OperationSocketHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Str("model", cfg.Gemini.DefaultModel).
		Str("base_url", cfg.Gemini.BaseURL).
		Msg("Application initialization complete")

	return app, nil
}

func (a *App) initServices() error {
	client, err := gemini.NewClient(&a.Config.Gemini, gemini.WithLogger(a.Logger))
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}
	a.FileSearchService = client
	a.QueryService = client

	a.Poller = poller.New(a.FileSearchService, a.Logger,
		poller.WithInterval(a.Config.PollerInterval()),
		poller.WithCeiling(a.Config.PollerCeiling()),
	)

	stagingService, err := staging.NewService(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create staging service: %w", err)
	}
	if err := stagingService.Start(); err != nil {
		return fmt.Errorf("failed to start staging janitor: %w", err)
	}
	a.StagingService = stagingService

	a.Logger.Debug().
		Str("staging_dir", stagingService.Dir()).
		Msg("Services initialized")

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Logger)
	a.StoreHandler = handlers.NewStoreHandler(a.FileSearchService, a.Logger)
	a.DocumentHandler = handlers.NewDocumentHandler(a.FileSearchService, a.Logger)
	a.UploadHandler = handlers.NewUploadHandler(a.FileSearchService, a.StagingService, a.Config.Upload.MaxFileSize, a.Logger)
	a.OperationHandler = handlers.NewOperationHandler(a.FileSearchService, a.Logger)
	a.QueryHandler = handlers.NewQueryHandler(a.QueryService, a.Logger)
	a.SocketHandler = handlers.NewOperationSocketHandler(a.FileSearchService, a.Poller, a.Logger)
}

// Close releases application resources
func (a *App) Close() error {
	if a.StagingService != nil {
		a.StagingService.Stop()
	}

	a.Logger.Info().Msg("Application closed")
	return nil
}
