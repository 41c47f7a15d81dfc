package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"pdxpulse/internal/config"
	apierrors "pdxpulse/internal/errors"
	"pdxpulse/internal/infrastructure"
	customMiddleware "pdxpulse/internal/middleware"
	"pdxpulse/internal/services"
	handlers "pdxpulse/internal/transport/http"
	"pdxpulse/internal/validation"
	ws "pdxpulse/internal/websocket"
	"pdxpulse/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	WebSocketHub  *ws.Hub
	Dashboard     *services.DashboardService
	HealthService *services.HealthService
	Metrics       *infrastructure.DashboardMetrics
	OTelProviders *infrastructure.OTelProviders
	ErrorHandler  *apierrors.ErrorHandler
	Logger        *slog.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewApplication wires every component. A nil cfg is loaded with
// config.Load; a nil logger is built from cfg.Logging.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return nil, apierrors.NewConfigError("failed to load configuration", err)
		}
	}

	if logger == nil {
		var err error
		if logger, err = infrastructure.InitializeLogger(cfg.Logging); err != nil {
			return nil, apierrors.NewConfigError("failed to initialize logger", err)
		}
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.GetFullVersionString()),
		slog.String("addr", cfg.Server.Addr()))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, contracts.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewDashboardMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Metrics:       metrics,
		OTelProviders: otelProviders,
		ErrorHandler:  apierrors.NewErrorHandler(logger, false),
		Logger:        logger,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeServices() {
	a.WebSocketHub = ws.NewHub(infrastructure.WithComponent(a.Logger, "websocket"), a.Metrics)

	validator := validation.NewFileValidator(infrastructure.WithComponent(a.Logger, "validation"), a.Config.Upload.MaxBytes)
	a.Dashboard = services.NewDashboardService(a.Config.Dashboard, validator, a.WebSocketHub, a.Metrics, infrastructure.WithComponent(a.Logger, "dashboard"))
	a.HealthService = services.NewHealthService(contracts.Version, a.WebSocketHub, a.Dashboard, a.Logger)
}

// setupRouter builds the route tree. The websocket route only gets the
// middleware that leaves the ResponseWriter hijackable.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Root: RequestID → RealIP → StripSlashes, shared by /ws, /healthz and /metrics.
	// API group: OTel → Logger → Recoverer → CORS → RateLimit → SecurityHeaders → Timeout.
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StripSlashes)

	wsHandler := ws.NewHandler(a.WebSocketHub, a.Config.WebSocket, a.Config.Security.AllowedOrigins, a.Logger)
	r.Handle(config.WebSocketEndpoint, wsHandler)

	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	r.Get(config.HealthEndpoint, healthHandler.HealthCheck)
	r.Handle(config.MetricsEndpoint, handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler))

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.ErrorHandler))
		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.ErrorHandler,
				a.Logger,
			).Handler)
		}
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.Timeout(a.Config.Server.WriteTimeout, a.Logger))

		r.Route(config.APIBasePath, func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Use(customMiddleware.Compress(5))
			r.Get("/version", healthHandler.Version)
			r.Mount("/", handlers.NewDashboardHandler(a.Dashboard, a.Config.Upload.MaxBytes, a.Logger, a.ErrorHandler).Routes())
		})
	})

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Server.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Addr returns the bound listen address once Run has started listening.
func (a *Application) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Run serves HTTP and runs the websocket hub until ctx is cancelled or either
// fails, then shuts everything down within the configured timeout.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	a.mu.Lock()
	a.listener = ln
	a.mu.Unlock()

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", ln.Addr().String()),
		slog.String("version", contracts.Version))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.WebSocketHub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	a.WebSocketHub.Stop()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}
