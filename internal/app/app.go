package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apteka/internal/common"
	"github.com/ternarybob/apteka/internal/handlers"
	"github.com/ternarybob/apteka/internal/interfaces"
	"github.com/ternarybob/apteka/internal/services/finder"
	"github.com/ternarybob/apteka/internal/services/geocoding"
	"github.com/ternarybob/apteka/internal/services/places"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Upstream clients
	GeocodingService interfaces.GeocodingService
	PlacesService    interfaces.PlacesService

	// Search pipeline
	FinderService interfaces.FinderService

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	PharmacyHandler *handlers.PharmacyHandler
	PageHandler     *handlers.PageHandler
	WSHandler       *handlers.WebSocketHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.initServices()
	app.initHandlers()

	app.Logger.Info().
		Str("geocoder", cfg.Geocoder.BaseURL).
		Str("overpass", cfg.Overpass.BaseURL).
		Dur("search_timeout", cfg.Search.Timeout).
		Msg("Application initialized")

	return app, nil
}

// NewServices builds the search pipeline without any HTTP surface.
// Used by the one-shot CLI and the MCP server.
func NewServices(cfg *common.Config, logger arbor.ILogger) interfaces.FinderService {
	app := &App{Config: cfg, Logger: logger}
	app.initServices()
	return app.FinderService
}

func (a *App) initServices() {
	a.GeocodingService = geocoding.NewService(&a.Config.Geocoder, a.Logger)
	a.PlacesService = places.NewService(&a.Config.Overpass, a.Logger)
	a.FinderService = finder.NewService(a.GeocodingService, a.PlacesService, &a.Config.Search, a.Logger)
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Logger)
	a.PharmacyHandler = handlers.NewPharmacyHandler(a.FinderService, a.Logger)
	a.PageHandler = handlers.NewPageHandler(a.FinderService, a.Logger)
	a.WSHandler = handlers.NewWebSocketHandler(a.FinderService, a.Logger)
}

// Close releases application resources
func (a *App) Close() error {
	a.Logger.Info().
		Int("websocket_clients", a.WSHandler.ClientCount()).
		Msg("Application closed")
	return nil
}
