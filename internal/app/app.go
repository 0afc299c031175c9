package app

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aashari/go-ai-proxy-server/internal/config"
	"github.com/aashari/go-ai-proxy-server/internal/database"
	"github.com/aashari/go-ai-proxy-server/internal/handlers"
	"github.com/aashari/go-ai-proxy-server/internal/httpclient"
	"github.com/aashari/go-ai-proxy-server/internal/logger"
	"github.com/aashari/go-ai-proxy-server/internal/middleware"
	"github.com/aashari/go-ai-proxy-server/internal/monitoring"
	"github.com/aashari/go-ai-proxy-server/internal/router"
	"github.com/aashari/go-ai-proxy-server/internal/vendors"
)

// App centralizes the application's dependencies and configuration
type App struct {
	Config   *config.Config
	Vendors  *vendors.Set
	Metrics  *monitoring.Metrics
	Usage    database.UsageRecorder
	Database *database.Connection

	handler http.Handler
}

// NewApp creates a new App instance with all dependencies. A MongoDB
// connection failure disables usage logging instead of failing startup.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientFactory := httpclient.NewFactory(httpclient.Options{})
	vendorSet := vendors.NewFactory(clientFactory).CreateSet(cfg.Vendors)

	a := &App{
		Config:  cfg,
		Vendors: vendorSet,
		Metrics: monitoring.NewMetrics(prometheus.NewRegistry()),
		Usage:   database.NoopRecorder{},
	}

	for vendor, configured := range vendors.KeyStatus(cfg.Vendors) {
		if !configured {
			logger.Warn("Vendor API key not configured, its routes will fail",
				"component", logger.ComponentNames.Vendor,
				"vendor", vendor)
		}
	}

	if cfg.Database.Enabled() {
		a.connectUsageLog(ctx)
	} else {
		logger.Info("Usage logging disabled: no MongoDB URI provided",
			"component", logger.ComponentNames.Database)
	}

	deps := handlers.Dependencies{
		Vendors:     vendorSet,
		Metrics:     a.Metrics,
		Usage:       a.Usage,
		KeyStatus:   vendors.KeyStatus(cfg.Vendors),
		Version:     cfg.Service.Version,
		Environment: cfg.Service.Environment,
	}
	if a.Database != nil {
		deps.Database = a.Database
	}

	routes := router.SetupRoutes(handlers.NewAPIHandlers(deps), router.Options{
		Metrics:     a.Metrics,
		EnablePprof: cfg.Server.EnablePprof,
	})

	// Panic recovery sits inside the router so panics are access logged and counted
	a.handler = middleware.Chain(routes,
		middleware.CORSMiddleware,
		middleware.RequestCorrelationMiddleware,
		middleware.BodyLimitMiddleware(cfg.Server.MaxRequestBodySize),
	)

	return a, nil
}

func (a *App) connectUsageLog(ctx context.Context) {
	settings := database.NewSettings(a.Config.Database, a.Config.Service)

	conn, err := database.Connect(ctx, settings)
	if err != nil {
		logger.Warn("MongoDB URI provided but connection failed, usage logging disabled",
			"component", logger.ComponentNames.Database,
			"error", err)
		return
	}

	a.Database = conn
	a.Usage = database.NewMongoRecorder(
		database.NewUsageLogRepository(conn.Collection(database.UsageCollection)),
		settings.Environment,
		a.Config.Service.Version,
	)
}

// Handler returns the fully wrapped HTTP handler
func (a *App) Handler() http.Handler {
	return a.handler
}

// Close flushes pending usage records and disconnects from MongoDB
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Usage.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.Database != nil {
		if err := a.Database.Disconnect(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
