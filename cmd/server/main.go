package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/vollink/vollink-api/internal/catalog"
	"github.com/vollink/vollink-api/internal/config"
	"github.com/vollink/vollink-api/internal/dashboard"
	"github.com/vollink/vollink-api/internal/handlers"
	"github.com/vollink/vollink-api/internal/lifecycle"
	"github.com/vollink/vollink-api/internal/middleware"
	"github.com/vollink/vollink-api/internal/migration"
	"github.com/vollink/vollink-api/internal/notification"
	"github.com/vollink/vollink-api/internal/repository"
	"github.com/vollink/vollink-api/internal/routes"
	"github.com/vollink/vollink-api/internal/temporal"
	"github.com/vollink/vollink-api/internal/temporal/activities"
	"github.com/vollink/vollink-api/internal/temporal/workflows"

	_ "github.com/lib/pq" // PostgreSQL driver
	tc "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

type application struct {
	config         *config.Config
	db             *sql.DB
	temporalClient tc.Client
	logger         zerolog.Logger
	notifications  notification.Service
	mailer         notification.Mailer
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	temporalLogger := temporal.NewTemporalAdapter(logger)

	gooseAdapter := migration.NewGooseAdapter(logger)
	goose.SetLogger(gooseAdapter)

	// Load configuration.
	cfg := config.Load()

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	migration.RunMigrations(cfg.DatabaseURL, logger)

	// Initialize notification service.
	notificationRepo := repository.NewNotificationRepository(db)
	notificationService := notification.NewService(notificationRepo, logger)

	// Mailer used by the email delivery activities.
	mailer, err := notification.NewSMTPMailer(cfg.Email)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure mailer")
	}

	// Initialize Temporal client.
	temporalClient, err := tc.Dial(tc.Options{
		Logger: temporalLogger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Unable to create Temporal client")
	}
	defer temporalClient.Close()

	// Create the application instance.
	app := &application{
		config:         cfg,
		db:             db,
		temporalClient: temporalClient,
		logger:         logger,
		notifications:  notificationService,
		mailer:         mailer,
	}

	// Start the Temporal worker in a separate goroutine.
	temporalWorker := app.startTemporalWorker(logger)

	// Initialize the HTTP router and middleware.
	router := app.initRouter(logger)
	loggedRouter := middleware.LoggingMiddleware(app.logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins([]string{"http://localhost:3000"}),
		h.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		h.AllowCredentials(),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, temporalWorker, logger)

	logger.Info().Msg("Application terminated.")
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter(logger zerolog.Logger) http.Handler {
	// Repositories
	eventRepo := repository.NewEventRepository(app.db)
	applicationRepo := repository.NewApplicationRepository(app.db)
	volunteerRepo := repository.NewVolunteerRepository(app.db)
	organizationRepo := repository.NewOrganizationRepository(app.db)

	// Email dispatch goes through Temporal so delivery retries outlive the
	// request that triggered it.
	dispatcher := temporal.NewDispatcher(app.temporalClient, workflows.EmailWorkflow)

	// Services
	catalogService := catalog.NewService(eventRepo, logger)
	lifecycleService := lifecycle.NewService(applicationRepo, eventRepo, volunteerRepo, organizationRepo, app.notifications, dispatcher, logger)
	dashboardService := dashboard.NewService(eventRepo, applicationRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(app.db, app.config, logger)
	eventHandler := handlers.NewEventHandler(catalogService, logger)
	applicationHandler := handlers.NewApplicationHandler(lifecycleService, logger)
	notificationHandler := handlers.NewNotificationHandler(app.notifications, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger)
	volunteerHandler := handlers.NewVolunteerHandler(volunteerRepo, logger)

	return routes.NewRouter(authHandler, eventHandler, applicationHandler, notificationHandler, dashboardHandler, volunteerHandler)
}

func (app *application) startTemporalWorker(logger zerolog.Logger) worker.Worker {
	activityImpl := &activities.Activities{
		Mailer: app.mailer,
	}

	w := worker.New(app.temporalClient, temporal.TaskQueueName, worker.Options{})

	w.RegisterWorkflow(workflows.EmailWorkflow)
	w.RegisterActivity(activityImpl)

	// Start the worker in a goroutine so it doesn't block.
	go func() {
		logger.Info().Msg("Starting Temporal worker...")
		if err := w.Run(worker.InterruptCh()); err != nil {
			logger.Fatal().Err(err).Msg("Unable to start worker")
		}
	}()

	return w
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, temporalWorker worker.Worker, logger zerolog.Logger) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}

	// Stop the Temporal worker.
	logger.Info().Msg("Stopping Temporal worker...")
	temporalWorker.Stop()
	logger.Info().Msg("Temporal worker stopped.")
}
