package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/internal/core/services"
	httphandlers "stagecast/internal/handlers/http"
	"stagecast/internal/infrastructure/capture"
	"stagecast/internal/infrastructure/middleware"
	"stagecast/internal/infrastructure/monitoring"
	"stagecast/internal/infrastructure/repositories"
	"stagecast/internal/infrastructure/transport"
	"stagecast/internal/infrastructure/viewfeed"
	"stagecast/pkg/archive"
	"stagecast/pkg/config"
	"stagecast/pkg/logger"
	"stagecast/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Try multiple config paths
	configPaths := []string{
		"configs/config.yaml",
		"./configs/config.yaml",
		"/etc/stagecast/config.yaml",
		"config.yaml",
	}

	var cfg *config.Config
	var err error

	for _, path := range configPaths {
		cfg, err = config.Load(path)
		if err == nil {
			break
		}
	}

	if err != nil {
		// Fallback to defaults if config cannot be loaded
		cfg = config.DefaultConfig()
	}

	// Initialize logger
	zapLogger := logger.New(cfg.Logging.Level)
	if cfg.Logging.Format == "console" {
		zapLogger = logger.NewConsole(cfg.Logging.Level)
	}
	defer zapLogger.Sync()

	log := zapLogger.Sugar()

	// Initialize tracing
	tracerProvider, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		JaegerURL:   cfg.Tracing.JaegerURL,
		Environment: cfg.Tracing.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		log.Fatalw("failed to initialize tracing", "error", err)
	}

	// Initialize repository factory
	repoFactory, err := repositories.NewRepositoryFactory(cfg, log)
	if err != nil {
		log.Fatalw("failed to create repository factory", "error", err)
	}
	defer repoFactory.Close()

	// Initialize repositories
	participantRepo := repoFactory.CreateParticipantRepository()
	bannerRepo := repoFactory.CreateBannerRepository()
	destinationRepo := repoFactory.CreateDestinationRepository()
	chatRepo := repoFactory.CreateChatRepository()

	// Initialize services
	participantService := services.NewParticipantService(participantRepo)
	overlayService := services.NewOverlayService(bannerRepo)
	destinationService := services.NewDestinationService(destinationRepo, cfg.Studio.ShareSlug)
	chatService := services.NewChatService(chatRepo)

	// Initialize the simulated device and broadcast layers
	captureProvider := capture.NewSimulatedProvider(capture.Config{
		AcquireTimeout: cfg.Capture.AcquireTimeout,
		AcquireLatency: cfg.Capture.AcquireLatency,
		FailureRate:    cfg.Capture.FailureRate,
	}, log)
	// Finished sessions are archived to disk
	var archiver *archive.Service
	if cfg.Studio.ArchiveDir != "" {
		archiveStorage, err := archive.NewFileStorage(cfg.Studio.ArchiveDir)
		if err != nil {
			log.Warnw("session archive disabled", "error", err)
		} else {
			archiver = archive.NewService(archiveStorage)
		}
	}

	broadcastTransport := transport.NewSimulatedBroadcast(cfg.Studio.BaseURL, archiver, log)

	// Initialize monitoring
	var metrics *monitoring.PrometheusCollector
	if cfg.Monitoring.PrometheusEnabled {
		metrics = monitoring.NewPrometheusCollector(prometheus.DefaultRegisterer)
	}

	controller := services.NewSessionController(
		participantService,
		overlayService,
		destinationService,
		captureProvider,
		broadcastTransport,
		metricsOrNil(metrics),
		log,
		services.SessionConfig{
			DefaultLayout: domain.LayoutMode(cfg.Studio.DefaultLayout),
			BaseURL:       cfg.Studio.BaseURL,
		},
	)

	// Bring the host camera up before accepting requests. A capture
	// failure degrades the session instead of aborting startup.
	bootCtx, bootCancel := context.WithTimeout(context.Background(), cfg.Capture.AcquireTimeout)
	if _, err := controller.StartLocalCamera(bootCtx, cfg.Studio.HostName); err != nil {
		log.Warnw("host camera unavailable, starting degraded", "error", err)
	}
	bootCancel()

	// Initialize the websocket view feed
	feed := viewfeed.NewServer(controller, viewfeed.Config{
		PingInterval: cfg.Viewfeed.PingInterval,
		WriteTimeout: cfg.Viewfeed.WriteTimeout,
	}, log)

	// Initialize HTTP handlers
	sessionHandler := httphandlers.NewSessionHandler(controller)
	participantHandler := httphandlers.NewParticipantHandler(controller, participantService)
	overlayHandler := httphandlers.NewOverlayHandler(controller, overlayService)
	destinationHandler := httphandlers.NewDestinationHandler(controller, destinationService)
	chatHandler := httphandlers.NewChatHandler(chatService)

	// Configure Gin
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestLoggingMiddleware(logger.NewContextLogger(zapLogger)))
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.NewHTTPRateLimitMiddleware(cfg))
	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware())
	}

	sessionHandler.SetupRoutes(router)
	participantHandler.SetupRoutes(router)
	overlayHandler.SetupRoutes(router)
	destinationHandler.SetupRoutes(router)
	chatHandler.SetupRoutes(router)

	// Websocket view feed
	router.GET("/ws", func(c *gin.Context) {
		feed.HandleWebSocket(c.Writer, c.Request)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"uptime":    time.Since(startTime).String(),
		})
	})

	// Readiness checks cover the storage layer and the device layer.
	healthChecker := monitoring.NewHealthChecker()
	healthChecker.AddCheck("repositories", func(ctx context.Context) (bool, error) {
		if err := repoFactory.HealthCheck(ctx); err != nil {
			return false, err
		}
		return true, nil
	}, 2*time.Second)
	healthChecker.AddCheck("capture", func(ctx context.Context) (bool, error) {
		return captureProvider != nil, nil
	}, time.Second)

	router.GET("/ready", func(c *gin.Context) {
		status := healthChecker.CheckAll(c.Request.Context())
		code := 200
		if status.Status != "healthy" {
			code = 503
		}
		c.JSON(code, status)
	})

	// Prometheus metrics endpoint
	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("Prometheus metrics enabled")
	}

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting Stagecast studio server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for shutdown signals or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("Received shutdown signal", "signal", sig)
	}

	log.Info("Shutting down Stagecast studio server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Stop the broadcast cleanly so a finished session is finalized.
	vm, err := controller.GetViewModel(shutdownCtx)
	if err == nil && vm.Mode != domain.ModeIdle {
		if vm.Mode.Live() {
			if err := controller.StopBroadcast(shutdownCtx); err != nil {
				log.Warnw("failed to stop broadcast during shutdown", "error", err)
			}
		}
		if vm.Mode.Recording() {
			if err := controller.StopRecording(shutdownCtx); err != nil {
				log.Warnw("failed to stop recording during shutdown", "error", err)
			}
		}
	}

	feed.Shutdown(shutdownCtx)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
	}

	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warnw("failed to shut down tracer provider", "error", err)
	}

	log.Info("Server exited")
}

// metricsOrNil keeps the controller on its no-op sink when Prometheus
// is disabled.
func metricsOrNil(collector *monitoring.PrometheusCollector) ports.MetricsSink {
	if collector == nil {
		return nil
	}
	return collector
}
