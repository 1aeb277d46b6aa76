package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/construction-backoffice/internal"
	"github.com/frahmantamala/construction-backoffice/internal/auth"
	authPostgres "github.com/frahmantamala/construction-backoffice/internal/auth/postgres"
	"github.com/frahmantamala/construction-backoffice/internal/authz"
	authzPostgres "github.com/frahmantamala/construction-backoffice/internal/authz/postgres"
	"github.com/frahmantamala/construction-backoffice/internal/core/events"
	"github.com/frahmantamala/construction-backoffice/internal/feature"
	featurePostgres "github.com/frahmantamala/construction-backoffice/internal/feature/postgres"
	"github.com/frahmantamala/construction-backoffice/internal/leave"
	leavePostgres "github.com/frahmantamala/construction-backoffice/internal/leave/postgres"
	"github.com/frahmantamala/construction-backoffice/internal/notification"
	notificationPostgres "github.com/frahmantamala/construction-backoffice/internal/notification/postgres"
	"github.com/frahmantamala/construction-backoffice/internal/project"
	projectPostgres "github.com/frahmantamala/construction-backoffice/internal/project/postgres"
	"github.com/frahmantamala/construction-backoffice/internal/purchase"
	purchasePostgres "github.com/frahmantamala/construction-backoffice/internal/purchase/postgres"
	"github.com/frahmantamala/construction-backoffice/internal/transport/rest"
	"github.com/frahmantamala/construction-backoffice/internal/transport/swagger"
	"github.com/frahmantamala/construction-backoffice/internal/user"
	userPostgres "github.com/frahmantamala/construction-backoffice/internal/user/postgres"
	"github.com/frahmantamala/construction-backoffice/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Guards   *authz.Authorization
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := swagger.ValidateSpec("./api/openapi.yml"); err != nil {
		deps.Logger.Warn("openapi document failed validation", "error", err)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Guards, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), cfg.Observability.Logging.Level)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)

	// Authorization core: store -> resolver -> per-session snapshot cache.
	authzRepo := authzPostgres.NewRepository(gormDB)
	resolver := authz.NewResolver(authzRepo, appLogger)
	sessions := authz.NewSessionManager(resolver, cfg.Authz.CacheTTL, cfg.Authz.CacheCleanupInterval, appLogger)
	authzService := authz.NewService(authzRepo, sessions, appLogger)
	authzHandler := authz.NewHandler(authzService, sessions)
	guards := authz.NewAuthorization(appLogger)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, sessions, cfg.Security.BCryptCost)
	authHandler := auth.NewHandler(authService, sessions)

	featureService := feature.NewService(featurePostgres.NewFeatureRepository(gormDB), appLogger)
	featureHandler := feature.NewHandler(featureService)

	userService := user.NewService(userPostgres.NewRepository(db), authService, sessions, appLogger)
	userHandler := user.NewHandler(userService)

	projectService := project.NewService(projectPostgres.NewProjectRepository(gormDB), appLogger)
	projectHandler := project.NewHandler(projectService)
	projectAccess := project.NewAccessMiddleware(project.NewSQLAccessChecker(db), appLogger)

	leaveService := leave.NewService(leavePostgres.NewLeaveRepository(gormDB), appLogger)
	leaveHandler := leave.NewHandler(leaveService)

	purchaseService := purchase.NewService(purchasePostgres.NewPurchaseRepository(gormDB), eventBus, appLogger)
	purchaseHandler := purchase.NewHandler(purchaseService)

	notificationService := notification.NewService(notificationPostgres.NewNotificationRepository(gormDB), appLogger)
	notificationHandler := notification.NewHandler(notificationService)
	notification.NewEventHandler(notificationService, appLogger).RegisterEventHandlers(eventBus)

	return &Dependencies{
		Config: cfg,
		Logger: appLogger,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
		Guards: guards,
		Handlers: rest.Handlers{
			Auth:          authHandler,
			Authz:         authzHandler,
			Feature:       featureHandler,
			User:          userHandler,
			Project:       projectHandler,
			ProjectAccess: projectAccess,
			Leave:         leaveHandler,
			Purchase:      purchaseHandler,
			Notification:  notificationHandler,
		},
	}, nil
}

// initDB opens the shared pgx connection pool used by both the sqlx
// repositories and the gorm session.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
