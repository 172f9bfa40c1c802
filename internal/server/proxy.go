package server

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunelyf/internal/filter"
	"github.com/desertthunder/tunelyf/internal/services"
	"github.com/desertthunder/tunelyf/internal/shared"
)

// NewProxyRouter wires the default middleware, the [CatalogHandler] and the [HealthHandler] into a router.
func NewProxyRouter(catalog services.Catalog, policies filter.Policies, cfg shared.FilterConfig, logger *log.Logger) (*BasicRouter, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	catalogHandler, err := NewCatalogHandler(CatalogOpts{
		Catalog:         catalog,
		Policies:        policies,
		FetchMultiplier: cfg.FetchMultiplier,
		MaxFetch:        cfg.MaxFetch,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	router := NewBasicRouter()
	router.Use(Defaults(logger)...)
	router.Handler(catalogHandler)
	router.Handle("GET", RouteHealth, NewHealthHandler(catalog.Name()))

	return router, nil
}
