package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/itemkeeper/core/docs"
	httpHandlers "github.com/itemkeeper/core/internal/adapters/http"
	"github.com/itemkeeper/core/internal/adapters/repository"
	"github.com/itemkeeper/core/internal/application/services"
	"github.com/itemkeeper/core/internal/domain/entities"
	"github.com/itemkeeper/core/internal/infrastructure/config"
	"github.com/itemkeeper/core/internal/infrastructure/logger"
)

// Server represents the HTTP server of one service
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	service  string
	registry *prometheus.Registry
}

// New creates the server for service ("catalog" or "shopping"). The catalog
// refuses to start without its database file.
func New(cfg *config.Config, service string, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = NewValidator()
	e.Debug = cfg.App.IsDevelopment()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger.WithFields("service", service),
		service: service,
	}

	var storeMetrics *repository.Metrics
	if cfg.Metrics.Enabled {
		server.registry = prometheus.NewRegistry()
		server.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		storeMetrics = repository.NewMetrics(server.registry)
	}

	fileMode, err := cfg.Store.Mode()
	if err != nil {
		return nil, err
	}
	path, err := cfg.Store.PathFor(service)
	if err != nil {
		return nil, err
	}
	storeOpts := repository.StoreOptions{
		Path:         path,
		AtomicWrites: cfg.Store.AtomicWrites,
		FileMode:     fileMode,
		Metrics:      storeMetrics,
		Logger:       server.logger.WithComponent("store"),
	}
	ids := repository.NewIDGenerator(cfg.Store.IDStrategy)

	server.setupMiddleware()
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	switch service {
	case entities.ServiceCatalog:
		catalogRepo := repository.NewCatalogRepository(storeOpts)
		if err := catalogRepo.Exists(); err != nil {
			return nil, err
		}
		catalogService := services.NewCatalogService(catalogRepo, ids, server.logger)
		httpHandlers.NewCatalogHandler(catalogService, server.logger).Register(e)

	case entities.ServiceShopping:
		shoppingRepo := repository.NewShoppingRepository(storeOpts)
		shoppingService := services.NewShoppingService(shoppingRepo, ids, server.logger)
		httpHandlers.NewShoppingHandler(shoppingService, server.logger).Register(e)

	default:
		return nil, fmt.Errorf("unknown service %q", service)
	}

	if cfg.App.Docs {
		docs.CatalogInfo.Version = cfg.App.Version
		docs.ShoppingInfo.Version = cfg.App.Version
		e.GET("/docs/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(service)))
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID middleware
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			s.logger.WithRequestID(values.RequestID).LogHTTPRequest(
				values.Method,
				values.URI,
				values.RemoteIP,
				values.Status,
				float64(values.Latency.Nanoseconds())/1000000,
				values.Error,
			)
			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))

	// Rate limiting middleware
	if s.config.Security.RateLimitRequests > 0 && s.config.Security.RateLimitWindow > 0 {
		limit := rate.Limit(float64(s.config.Security.RateLimitRequests) / s.config.Security.RateLimitWindow.Seconds())
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{Rate: limit, Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, httpHandlers.ErrorResponse{Detail: "rate limit exceeded"})
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.JSON(http.StatusTooManyRequests, httpHandlers.ErrorResponse{Detail: "rate limit exceeded"})
			},
		}))
	}

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// Timeout middleware
	if s.config.Server.RequestTimeout > 0 {
		s.echo.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: s.config.Server.RequestTimeout,
		}))
	}
}

// ServeHTTP lets the server be driven without a listener
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the echo validator used for request input
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
